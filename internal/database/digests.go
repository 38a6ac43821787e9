package database

import "database/sql"

// ReplaceDigest stores a digest and its items in one transaction,
// replacing any earlier run for the same date. Nothing is committed when
// any insert fails.
func (db *DB) ReplaceDigest(d Digest, items []DigestItem) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRow("SELECT id FROM digests WHERE run_date = ?", d.RunDate).Scan(&existingID)
	switch {
	case err == nil:
		if _, err := tx.Exec("DELETE FROM digest_items WHERE digest_id = ?", existingID); err != nil {
			return 0, err
		}
		if _, err := tx.Exec("DELETE FROM digests WHERE id = ?", existingID); err != nil {
			return 0, err
		}
	case err != sql.ErrNoRows:
		return 0, err
	}

	result, err := tx.Exec(
		`INSERT INTO digests (run_date, subject, body_text, body_html, body_markdown, item_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.RunDate, d.Subject, d.BodyText, d.BodyHTML, d.BodyMarkdown, d.ItemCount,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, item := range items {
		if _, err := tx.Exec(
			`INSERT INTO digest_items
			(digest_id, section, keyword, title, summary, source, link, published_display, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, item.Section, item.Keyword, item.Title, item.Summary,
			item.Source, item.Link, item.PublishedDisplay, item.Position,
		); err != nil {
			return 0, err
		}
	}
	return id, tx.Commit()
}

// GetDigest returns the digest for a run date, or nil when none exists.
func (db *DB) GetDigest(runDate string) (*Digest, error) {
	row := db.conn.QueryRow(
		`SELECT id, run_date, subject, body_text, body_html, body_markdown, item_count, generated_at
		FROM digests WHERE run_date = ?`, runDate,
	)

	var d Digest
	if err := row.Scan(&d.ID, &d.RunDate, &d.Subject, &d.BodyText, &d.BodyHTML,
		&d.BodyMarkdown, &d.ItemCount, &d.GeneratedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// GetAllDigests returns all digests ordered by run_date DESC.
func (db *DB) GetAllDigests() ([]Digest, error) {
	rows, err := db.conn.Query(
		`SELECT id, run_date, subject, body_text, body_html, body_markdown, item_count, generated_at
		FROM digests ORDER BY run_date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var digests []Digest
	for rows.Next() {
		var d Digest
		if err := rows.Scan(&d.ID, &d.RunDate, &d.Subject, &d.BodyText, &d.BodyHTML,
			&d.BodyMarkdown, &d.ItemCount, &d.GeneratedAt); err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}
	return digests, rows.Err()
}

// GetDigestItems returns a digest's items in stored order.
func (db *DB) GetDigestItems(digestID int64) ([]DigestItem, error) {
	rows, err := db.conn.Query(
		`SELECT id, digest_id, section, keyword, title, summary, source, link, published_display, position
		FROM digest_items WHERE digest_id = ? ORDER BY position`, digestID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DigestItem
	for rows.Next() {
		var item DigestItem
		if err := rows.Scan(&item.ID, &item.DigestID, &item.Section, &item.Keyword,
			&item.Title, &item.Summary, &item.Source, &item.Link,
			&item.PublishedDisplay, &item.Position); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetLastRunDate returns the most recent digest's run date, or empty
// string when no digest has been stored.
func (db *DB) GetLastRunDate() (string, error) {
	row := db.conn.QueryRow("SELECT run_date FROM digests ORDER BY run_date DESC LIMIT 1")

	var runDate string
	if err := row.Scan(&runDate); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return runDate, nil
}

// GetStats returns aggregate database statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM digests", &s.TotalDigests},
		{"SELECT COUNT(*) FROM digest_items", &s.TotalItems},
		{"SELECT COUNT(*) FROM digest_items WHERE section = 'news'", &s.NewsItems},
		{"SELECT COUNT(*) FROM digest_items WHERE section = 'blog'", &s.BlogItems},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return s, nil
}
