package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gokatarajesh/trivia-arena/internal/question"
)

// BankClient fetches the question bank document from a remote endpoint.
type BankClient struct {
	url        string
	httpClient *http.Client
}

func NewBankClient(url string, httpClient *http.Client) *BankClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &BankClient{
		url:        url,
		httpClient: httpClient,
	}
}

func (c *BankClient) FetchBank(ctx context.Context) ([]question.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bank endpoint non-200: %d", resp.StatusCode)
	}

	var bank []question.Question
	if err := json.NewDecoder(resp.Body).Decode(&bank); err != nil {
		return nil, err
	}
	return bank, nil
}
