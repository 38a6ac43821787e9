// Package weather reports the evening forecast for a configured address
// using Nominatim geocoding and the Open-Meteo forecast API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kdigest/internal/dates"
)

const (
	nominatimSearchURL = "https://nominatim.openstreetmap.org/search"
	forecastURL        = "https://api.open-meteo.com/v1/forecast"
	userAgent          = "kdigest/1.0 (keyword digest)"

	// eveningRange labels the forecast window shown in the digest.
	eveningRange = "19:00~21:00"

	queryFailed   = "조회 실패"
	addressFailed = "주소 조회 실패"
)

// Status classifies how a Report was obtained.
type Status string

const (
	StatusOK           Status = "success"
	StatusAddressError Status = "address_error"
	StatusQueryError   Status = "error"
)

// Report is the digest-ready weather summary for one address.
type Report struct {
	Address     string
	Temperature string
	Humidity    string
	WindSpeed   string
	Condition   string
	TimeRange   string
	Status      Status
}

// Client queries the geocoding and forecast endpoints.
type Client struct {
	client      *http.Client
	geocodeURL  string
	forecastURL string
	now         func() time.Time
}

// New creates a weather client with a ten second request timeout.
func New() *Client {
	return &Client{
		client:      &http.Client{Timeout: 10 * time.Second},
		geocodeURL:  nominatimSearchURL,
		forecastURL: forecastURL,
		now:         time.Now,
	}
}

// ByAddress geocodes the address and returns its evening forecast. All
// failures degrade to a labeled Report, never an error.
func (c *Client) ByAddress(ctx context.Context, address string) Report {
	lat, lon, err := c.coordinates(ctx, address)
	if err != nil {
		log.Printf("weather: geocoding %q: %v", address, err)
		return Report{
			Address:     address,
			Temperature: addressFailed,
			Humidity:    addressFailed,
			WindSpeed:   addressFailed,
			Condition:   "주소를 찾을 수 없습니다",
			Status:      StatusAddressError,
		}
	}

	report := c.byCoordinates(ctx, lat, lon)
	report.Address = address
	return report
}

func (c *Client) coordinates(ctx context.Context, address string) (lat, lon float64, err error) {
	params := url.Values{
		"q":               {address},
		"format":          {"json"},
		"limit":           {"1"},
		"accept-language": {"ko"},
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := c.getJSON(ctx, c.geocodeURL+"?"+params.Encode(), &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding result for %q", address)
	}

	if _, err := fmt.Sscanf(results[0].Lat, "%f", &lat); err != nil {
		return 0, 0, fmt.Errorf("parsing latitude: %w", err)
	}
	if _, err := fmt.Sscanf(results[0].Lon, "%f", &lon); err != nil {
		return 0, 0, fmt.Errorf("parsing longitude: %w", err)
	}
	return lat, lon, nil
}

type hourlyForecast struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature_2m"`
	Humidity    []float64 `json:"relative_humidity_2m"`
	WindSpeed   []float64 `json:"wind_speed_10m"`
	WeatherCode []int     `json:"weather_code"`
}

func (c *Client) byCoordinates(ctx context.Context, lat, lon float64) Report {
	params := url.Values{
		"latitude":      {fmt.Sprintf("%f", lat)},
		"longitude":     {fmt.Sprintf("%f", lon)},
		"hourly":        {"temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"},
		"timezone":      {"Asia/Seoul"},
		"forecast_days": {"1"},
	}

	var result struct {
		Hourly hourlyForecast `json:"hourly"`
	}
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &result); err != nil {
		log.Printf("weather: forecast query: %v", err)
		return failedReport(queryFailed)
	}

	today := c.now().In(dates.KST).Format("2006-01-02")
	report, ok := eveningAverages(result.Hourly, today)
	if ok {
		return report
	}

	// The evening hours have already passed out of the forecast window;
	// fall back to current conditions.
	return c.current(ctx, lat, lon)
}

// eveningAverages averages the 19:00, 20:00 and 21:00 readings for the
// given day and picks the most frequent weather code.
func eveningAverages(hourly hourlyForecast, day string) (Report, bool) {
	targets := []string{day + "T19:00", day + "T20:00", day + "T21:00"}

	var temps, humidities, winds []float64
	var codes []int
	for i, stamp := range hourly.Time {
		if !matchesAny(stamp, targets) {
			continue
		}
		if i < len(hourly.Temperature) {
			temps = append(temps, hourly.Temperature[i])
		}
		if i < len(hourly.Humidity) {
			humidities = append(humidities, hourly.Humidity[i])
		}
		if i < len(hourly.WindSpeed) {
			winds = append(winds, hourly.WindSpeed[i])
		}
		if i < len(hourly.WeatherCode) {
			codes = append(codes, hourly.WeatherCode[i])
		}
	}
	if len(temps) == 0 {
		return Report{}, false
	}

	return Report{
		Temperature: fmt.Sprintf("%.1f°C", mean(temps)),
		Humidity:    fmt.Sprintf("%.0f%%", mean(humidities)),
		WindSpeed:   fmt.Sprintf("%.1f km/h", mean(winds)),
		Condition:   Condition(mostFrequent(codes)),
		TimeRange:   eveningRange,
		Status:      StatusOK,
	}, true
}

func (c *Client) current(ctx context.Context, lat, lon float64) Report {
	params := url.Values{
		"latitude":      {fmt.Sprintf("%f", lat)},
		"longitude":     {fmt.Sprintf("%f", lon)},
		"current":       {"temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"},
		"timezone":      {"Asia/Seoul"},
		"forecast_days": {"1"},
	}

	var result struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &result); err != nil {
		log.Printf("weather: current conditions query: %v", err)
		return failedReport(queryFailed)
	}

	return Report{
		Temperature: fmt.Sprintf("%.1f°C", result.Current.Temperature),
		Humidity:    fmt.Sprintf("%.0f%%", result.Current.Humidity),
		WindSpeed:   fmt.Sprintf("%.1f km/h", result.Current.WindSpeed),
		Condition:   Condition(result.Current.WeatherCode),
		TimeRange:   eveningRange,
		Status:      StatusOK,
	}
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func failedReport(label string) Report {
	return Report{
		Temperature: label,
		Humidity:    label,
		WindSpeed:   label,
		Condition:   label,
		TimeRange:   eveningRange,
		Status:      StatusQueryError,
	}
}

func matchesAny(stamp string, targets []string) bool {
	for _, t := range targets {
		if strings.Contains(stamp, t) {
			return true
		}
	}
	return false
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func mostFrequent(codes []int) int {
	if len(codes) == 0 {
		return 0
	}
	counts := make(map[int]int)
	best, bestCount := codes[0], 0
	for _, code := range codes {
		counts[code]++
		if counts[code] > bestCount {
			best, bestCount = code, counts[code]
		}
	}
	return best
}

// conditions maps WMO weather codes to Korean descriptions.
var conditions = map[int]string{
	0:  "맑음",
	1:  "대체로 맑음",
	2:  "부분적으로 흐림",
	3:  "흐림",
	45: "안개",
	48: "서리 안개",
	51: "가벼운 이슬비",
	53: "보통 이슬비",
	55: "강한 이슬비",
	56: "가벼운 얼음 이슬비",
	57: "강한 얼음 이슬비",
	61: "약한 비",
	63: "보통 비",
	65: "강한 비",
	66: "가벼운 얼음비",
	67: "강한 얼음비",
	71: "약한 눈",
	73: "보통 눈",
	75: "강한 눈",
	77: "진눈깨비",
	80: "약한 소나기",
	81: "보통 소나기",
	82: "강한 소나기",
	85: "약한 눈 소나기",
	86: "강한 눈 소나기",
	95: "뇌우",
	96: "약한 우박을 동반한 뇌우",
	99: "강한 우박을 동반한 뇌우",
}

// Condition translates a WMO weather code into its Korean description.
func Condition(code int) string {
	if desc, ok := conditions[code]; ok {
		return desc
	}
	return "알 수 없음"
}

// Text renders the report as a plain-text digest block.
func Text(r Report) string {
	address := r.Address
	if address == "" {
		address = "알 수 없는 위치"
	}
	if r.Status == StatusAddressError {
		return fmt.Sprintf("\n%s 날씨 정보:\n- 주소를 찾을 수 없습니다.\n", address)
	}

	title := address + " 날씨 정보"
	if r.TimeRange != "" {
		title += " (" + r.TimeRange + ")"
	}
	return fmt.Sprintf("\n%s:\n- 기온: %s\n- 습도: %s\n- 풍속: %s\n- 날씨: %s\n",
		title, r.Temperature, r.Humidity, r.WindSpeed, r.Condition)
}

// HTML renders the report as an HTML fragment.
func HTML(r Report) string {
	address := r.Address
	if address == "" {
		address = "알 수 없는 위치"
	}
	if r.Status == StatusAddressError {
		return fmt.Sprintf("<h3>%s 날씨 정보</h3>\n<p><strong>⚠️ 주소를 찾을 수 없습니다.</strong></p>\n", address)
	}

	title := address + " 날씨 정보"
	if r.TimeRange != "" {
		title += " (" + r.TimeRange + ")"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h3>%s</h3>\n<ul>\n", title)
	fmt.Fprintf(&b, "<li><strong>🌡️ 기온:</strong> %s</li>\n", r.Temperature)
	fmt.Fprintf(&b, "<li><strong>💧 습도:</strong> %s</li>\n", r.Humidity)
	fmt.Fprintf(&b, "<li><strong>💨 풍속:</strong> %s</li>\n", r.WindSpeed)
	fmt.Fprintf(&b, "<li><strong>🌤️ 날씨:</strong> %s</li>\n", r.Condition)
	b.WriteString("</ul>\n")
	return b.String()
}
