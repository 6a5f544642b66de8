package ratesController

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// rateAPIURL publishes the official USD/VES exchange rate.
const rateAPIURL = "https://api.dolarvzla.com/public/exchange-rate"

// cacheTTL matches the upstream refresh cadence.
const cacheTTL = 5 * time.Minute

type exchangeRateResponse struct {
	Current struct {
		USD  float64 `json:"usd"`
		EUR  float64 `json:"eur"`
		Date string  `json:"date"`
	} `json:"current"`
}

// DollarRate is the shape the storefront header consumes.
type DollarRate struct {
	Source    string  `json:"fuente"`
	Name      string  `json:"nombre"`
	Buy       float64 `json:"compra"`
	Sell      float64 `json:"venta"`
	Average   float64 `json:"promedio"`
	UpdatedAt string  `json:"fechaActualizacion"`
}

var (
	rateMu     sync.Mutex
	cachedRate *DollarRate
	fetchedAt  time.Time
	httpClient = &http.Client{Timeout: 10 * time.Second}
)

func fetchRate() (*DollarRate, error) {
	resp, err := httpClient.Get(rateAPIURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &upstreamError{status: resp.StatusCode}
	}

	var data exchangeRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	return &DollarRate{
		Source:    "DolarVzla",
		Name:      "Tasa Oficial",
		Buy:       data.Current.USD,
		Sell:      data.Current.USD,
		Average:   data.Current.USD,
		UpdatedAt: data.Current.Date,
	}, nil
}

type upstreamError struct{ status int }

func (e *upstreamError) Error() string { return "rate API returned " + http.StatusText(e.status) }

// GetDollarRate proxies the exchange-rate API with a short cache. When
// the upstream is down a stale rate is served if one exists; otherwise
// the client gets a 503 and the storefront simply skips the bolivar
// conversion. The rate is never allowed to block checkout.
// GET /api/dollar-rate
func GetDollarRate() gin.HandlerFunc {
	return func(c *gin.Context) {
		rateMu.Lock()
		defer rateMu.Unlock()

		if cachedRate != nil && time.Since(fetchedAt) < cacheTTL {
			c.JSON(http.StatusOK, cachedRate)
			return
		}

		rate, err := fetchRate()
		if err != nil {
			if cachedRate != nil {
				c.JSON(http.StatusOK, cachedRate)
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No se pudo obtener la tasa del dólar"})
			return
		}

		cachedRate = rate
		fetchedAt = time.Now()
		c.JSON(http.StatusOK, rate)
	}
}
