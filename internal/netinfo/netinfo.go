// Package netinfo reports the machine's local and public IP addresses
// for the digest footer.
package netinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	localFailed  = "로컬 IP 조회 실패"
	publicFailed = "공용 IP 조회 실패: 모든 서비스에 접근할 수 없습니다"
)

// Info holds both addresses, or their Korean failure labels.
type Info struct {
	LocalIP  string
	PublicIP string
}

// service is one public-IP endpoint with its response decoder.
type service struct {
	url    string
	decode func([]byte) (string, error)
}

func plainText(body []byte) (string, error) {
	return strings.TrimSpace(string(body)), nil
}

var publicIPServices = []service{
	{url: "https://api.ipify.org", decode: plainText},
	{url: "https://httpbin.org/ip", decode: func(body []byte) (string, error) {
		var payload struct {
			Origin string `json:"origin"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", err
		}
		return payload.Origin, nil
	}},
	{url: "https://ipecho.net/plain", decode: plainText},
}

// Client looks up the machine's addresses. The zero value is not usable;
// construct with New.
type Client struct {
	client   *http.Client
	services []service
}

// New creates a netinfo client with a five second per-service timeout.
func New() *Client {
	return &Client{
		client:   &http.Client{Timeout: 5 * time.Second},
		services: publicIPServices,
	}
}

// Lookup returns both addresses. Failures degrade to labeled strings,
// never errors.
func (c *Client) Lookup(ctx context.Context) Info {
	return Info{
		LocalIP:  LocalIP(),
		PublicIP: c.publicIP(ctx),
	}
}

// LocalIP returns the address of the interface that routes to the
// internet. Dialing UDP assigns a source address without sending any
// packet.
func LocalIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return fmt.Sprintf("%s: %v", localFailed, err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return localFailed
	}
	return addr.IP.String()
}

// publicIP tries each service in order and returns the first answer.
func (c *Client) publicIP(ctx context.Context) string {
	for _, svc := range c.services {
		ip, err := c.query(ctx, svc)
		if err != nil {
			log.Printf("netinfo: %s: %v", svc.url, err)
			continue
		}
		if ip != "" {
			return ip
		}
	}
	return publicFailed
}

func (c *Client) query(ctx context.Context, svc service) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return svc.decode(body)
}

// Text renders the network block of the plain-text digest.
func Text(info Info) string {
	return fmt.Sprintf("\n현재 네트워크 정보:\n- 로컬 IP: %s\n- 공용 IP: %s\n", info.LocalIP, info.PublicIP)
}

// HTML renders the network block of the HTML digest.
func HTML(info Info) string {
	var b strings.Builder
	b.WriteString("<h3>현재 네트워크 정보</h3>\n<ul>\n")
	fmt.Fprintf(&b, "<li><strong>로컬 IP:</strong> %s</li>\n", info.LocalIP)
	fmt.Fprintf(&b, "<li><strong>공용 IP:</strong> %s</li>\n", info.PublicIP)
	b.WriteString("</ul>\n")
	return b.String()
}
