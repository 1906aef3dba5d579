package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// BookMetadata contains book information fetched from OpenLibrary.
type BookMetadata struct {
	Title           string `json:"title,omitempty"`
	Author          string `json:"author,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	PublicationYear int    `json:"publication_year,omitempty"`
	OpenLibraryKey  string `json:"open_library_key,omitempty"`
}

// OpenLibraryClient fetches book metadata from the OpenLibrary API.
type OpenLibraryClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewOpenLibraryClient creates a new OpenLibrary API client with rate
// limiting. baseURL defaults to the public API when empty.
func NewOpenLibraryClient(baseURL string) *OpenLibraryClient {
	if baseURL == "" {
		baseURL = "https://openlibrary.org"
	}
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

type openLibraryBook struct {
	Key           string      `json:"key"`
	Title         string      `json:"title"`
	Publishers    []string    `json:"publishers"`
	PublishDate   string      `json:"publish_date"`
	NumberOfPages int         `json:"number_of_pages"`
	Authors       []authorRef `json:"authors"`
}

type authorRef struct {
	Key string `json:"key"`
}

// SearchByISBN looks up a book by its ISBN and returns metadata, resolving
// the first author reference to a name.
func (c *OpenLibraryClient) SearchByISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("invalid ISBN")
	}

	c.rateLimiter.wait()

	url := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Librarian/1.0 (https://github.com/mrlokans/librarian)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ISBN data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("ISBN not found: %s", isbn)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var bookData openLibraryBook
	if err := json.NewDecoder(resp.Body).Decode(&bookData); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	metadata := &BookMetadata{
		Title:          bookData.Title,
		ISBN:           isbn,
		OpenLibraryKey: bookData.Key,
	}
	if len(bookData.Publishers) > 0 {
		metadata.Publisher = bookData.Publishers[0]
	}
	if bookData.PublishDate != "" {
		metadata.PublicationYear = extractYear(bookData.PublishDate)
	}

	if len(bookData.Authors) > 0 {
		authorName, err := c.fetchAuthorName(ctx, bookData.Authors[0].Key)
		if err == nil {
			metadata.Author = authorName
		}
	}

	return metadata, nil
}

func (c *OpenLibraryClient) fetchAuthorName(ctx context.Context, authorKey string) (string, error) {
	if authorKey == "" {
		return "", fmt.Errorf("empty author key")
	}

	c.rateLimiter.wait()

	url := fmt.Sprintf("%s%s.json", c.baseURL, authorKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Librarian/1.0 (https://github.com/mrlokans/librarian)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status: %d", resp.StatusCode)
	}

	var authorData struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&authorData); err != nil {
		return "", err
	}

	return authorData.Name, nil
}

// normalizeISBN removes hyphens and spaces from ISBN.
func normalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	isbn = strings.TrimSpace(isbn)

	// Basic validation: ISBN-10 or ISBN-13
	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}

	return isbn
}

// extractYear tries to extract a 4-digit year from a date string.
func extractYear(dateStr string) int {
	dateStr = strings.TrimSpace(dateStr)
	if len(dateStr) < 4 {
		return 0
	}

	fields := strings.FieldsFunc(dateStr, func(r rune) bool {
		return r < '0' || r > '9'
	})
	for _, field := range fields {
		if len(field) == 4 {
			year, err := strconv.Atoi(field)
			if err == nil && year >= 1000 && year <= 2999 {
				return year
			}
		}
	}
	return 0
}
