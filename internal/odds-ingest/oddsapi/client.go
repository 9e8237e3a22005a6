package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client consome a The Odds API (catálogo de esportes, eventos e player props).
// Todas as chamadas aplicam timeout limitado; erros viram *APIError.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

// Sport é uma entrada do catálogo de esportes da API.
type Sport struct {
	Key    string `json:"key"`
	Group  string `json:"group"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// Event é um evento esportivo futuro (jogo) de um esporte.
type Event struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
}

// Usage reporta o consumo de quota retornado nos headers da API.
type Usage struct {
	RequestsRemaining string
	RequestsUsed      string
}

func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// get executa uma requisição autenticada e decodifica o corpo JSON em dst.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst any) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, &APIError{Kind: KindUnauthorized, StatusCode: 0, Message: "ODDS_API_KEY is not set"}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", c.apiKey)

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindRequestFailed, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return resp, &APIError{Kind: KindUnauthorized, StatusCode: resp.StatusCode, Message: "check ODDS_API_KEY"}
	case resp.StatusCode == http.StatusTooManyRequests:
		return resp, &APIError{Kind: KindQuotaExceeded, StatusCode: resp.StatusCode, Message: "wait or upgrade plan"}
	case resp.StatusCode != http.StatusOK:
		return resp, &APIError{Kind: KindRequestFailed, StatusCode: resp.StatusCode, Message: string(body)}
	}

	if dst != nil {
		if err := json.Unmarshal(body, dst); err != nil {
			return resp, &APIError{Kind: KindRequestFailed, StatusCode: resp.StatusCode, Message: "invalid JSON body: " + err.Error()}
		}
	}

	return resp, nil
}

// Sports retorna o catálogo de esportes com a flag de temporada ativa.
func (c *Client) Sports(ctx context.Context) ([]Sport, error) {
	var sports []Sport
	if _, err := c.get(ctx, "sports", nil, &sports); err != nil {
		return nil, err
	}
	return sports, nil
}

// Events retorna os eventos futuros de um esporte.
func (c *Client) Events(ctx context.Context, sportKey string) ([]Event, error) {
	var events []Event
	if _, err := c.get(ctx, fmt.Sprintf("sports/%s/events", sportKey), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// PlayerProps busca odds de player props de um evento, filtradas por mercados e
// bookmakers. O retorno é o JSON cru decodificado (shapes frouxos) — a estrutura
// só é confiável depois de passar pelos validadores do pacote validate.
func (c *Client) PlayerProps(ctx context.Context, sportKey, eventID string, markets, bookmakers []string) (any, error) {
	params := url.Values{}
	params.Set("markets", strings.Join(markets, ","))
	params.Set("oddsFormat", "american")
	if len(bookmakers) > 0 {
		params.Set("bookmakers", strings.Join(bookmakers, ","))
	}

	var raw any
	endpoint := fmt.Sprintf("sports/%s/events/%s/odds", sportKey, eventID)
	if _, err := c.get(ctx, endpoint, params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetUsage consulta o consumo de quota com uma requisição mínima ao catálogo.
func (c *Client) GetUsage(ctx context.Context) (Usage, error) {
	resp, err := c.get(ctx, "sports", nil, nil)
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		RequestsRemaining: resp.Header.Get("x-requests-remaining"),
		RequestsUsed:      resp.Header.Get("x-requests-used"),
	}, nil
}
