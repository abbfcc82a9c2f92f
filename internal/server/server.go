// Package server provides the handler for the cgtcalcd web server. It is responsible for parsing the request and
// running it through a form.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/golang/glog"
	"github.com/google/uuid"
	lruv2 "github.com/hashicorp/golang-lru/v2"
	"github.com/tslnc04/cgt-calculator/internal/cgt"
	"github.com/tslnc04/cgt-calculator/internal/form"
	"github.com/tslnc04/cgt-calculator/internal/response"
	"golang.org/x/time/rate"
)

const (
	// APIBasePath is the base path for the API. All paths are relative to this.
	APIBasePath = "/api/v1"

	// RequestIDHeader is set on every API response to a new random ID, which is also logged.
	RequestIDHeader = "X-Request-ID"
)

type responseCache = *lruv2.Cache[string, *response.Response]

// RequestHandler is a handler for the cgtcalcd web server. It includes a cache of calculated responses and a limiter
// shared by all clients. Its zero value is not valid and must be initialized with [NewRequestHandler].
type RequestHandler struct {
	cache   responseCache
	limiter *rate.Limiter
}

// NewRequestHandler creates a new request handler with the given cache size. Requests are allowed at the given rate
// with bursts of up to burst requests. A limit of [rate.Inf] disables rate limiting.
func NewRequestHandler(cacheSize int, limit rate.Limit, burst int) (*RequestHandler, error) {
	cache, err := lruv2.New[string, *response.Response](cacheSize)
	if err != nil {
		return nil, err
	}

	return &RequestHandler{cache: cache, limiter: rate.NewLimiter(limit, burst)}, nil
}

// ServeHTTP handles a request for calculating capital gains tax. It expects the purchase price, sale price, expenses,
// investment type and income range in the query string. It responds with CSV unless format=json is given.
func (handler *RequestHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	requestID := uuid.NewString()
	resp.Header().Set(RequestIDHeader, requestID)

	glog.V(10).Infof("[%s] Handling request from %s to URL `%s` with pattern %s",
		requestID, req.RemoteAddr, req.URL, req.Pattern)

	if !handler.limiter.Allow() {
		glog.V(10).Infof("[%s] Rate limited", requestID)

		http.Error(resp, "too many requests", http.StatusTooManyRequests)

		return
	}

	params, err := parseRequestParams(req.URL)
	if err != nil {
		glog.V(10).Infof("[%s] Failed to parse request params: %s", requestID, err)

		http.Error(resp, fmt.Sprintf("failed to parse request params: %s", err), http.StatusBadRequest)

		return
	}

	response, err := params.retrieveOrCalculate(handler.cache)
	if err != nil {
		glog.V(10).Infof("[%s] Failed to calculate: %s", requestID, err)

		http.Error(resp, fmt.Sprintf("failed to calculate: %s", err), http.StatusBadRequest)

		return
	}

	glog.V(10).Infof("[%s] Responding with tax owed %.2f to request with params %+v", requestID, response.TaxOwed, params)

	if params.json {
		resp.Header().Set("Content-Type", "application/json")
		resp.WriteHeader(http.StatusOK)
		err = response.WriteJSON(resp)
	} else {
		resp.Header().Set("Content-Type", "text/csv")
		resp.WriteHeader(http.StatusOK)
		err = response.WriteCSV(resp)
	}

	if err != nil {
		glog.Errorf("[%s] Failed to write response: %s", requestID, err)
	}
}

type requestParams struct {
	purchasePrice  string
	salePrice      string
	expenses       string
	investmentType string
	incomeRange    string
	financialYear  string
	country        string
	json           bool
}

// parseRequestParams parses the request parameters from the URL and returns a new requestParams struct. Amounts are
// left for the form to validate, but a given investment type or income range must be one of the recognized labels.
func parseRequestParams(url *url.URL) (*requestParams, error) {
	query := url.Query()
	params := &requestParams{
		purchasePrice:  strings.TrimSpace(query.Get("purchase")),
		salePrice:      strings.TrimSpace(query.Get("sale")),
		expenses:       strings.TrimSpace(query.Get("expenses")),
		investmentType: strings.TrimSpace(query.Get("investment-type")),
		incomeRange:    strings.TrimSpace(query.Get("income-range")),
		financialYear:  strings.TrimSpace(query.Get("financial-year")),
		country:        strings.TrimSpace(query.Get("country")),
	}

	if params.investmentType != "" {
		if _, err := cgt.ParseInvestmentType(params.investmentType); err != nil {
			return nil, err
		}
	}

	if params.incomeRange != "" {
		if _, err := cgt.ParseIncomeBracket(params.incomeRange); err != nil {
			return nil, err
		}
	}

	switch format := query.Get("format"); format {
	case "", "csv":
	case "json":
		params.json = true
	default:
		return nil, errors.New("format must be csv or json")
	}

	return params, nil
}

// getCacheKey returns a string representation of the parameters that can be used as a cache key. The output format
// is not part of the key.
func (params *requestParams) getCacheKey() string {
	return strings.Join([]string{params.purchasePrice, params.salePrice, params.expenses, params.investmentType,
		params.incomeRange, params.financialYear, params.country}, "|")
}

// buildForm creates a new form filled in with the parameters from the request.
func (params *requestParams) buildForm() *form.Form {
	return form.New().
		SetFinancialYear(params.financialYear).
		SetCountry(params.country).
		SetPurchasePrice(params.purchasePrice).
		SetSalePrice(params.salePrice).
		SetExpenses(params.expenses).
		SetInvestmentType(params.investmentType).
		SetIncomeRange(params.incomeRange)
}

// retrieveOrCalculate attempts to retrieve a response from the cache or calculate it with a new form.
func (params *requestParams) retrieveOrCalculate(cache responseCache) (*response.Response, error) {
	cacheKey := params.getCacheKey()
	cachedResponse, ok := cache.Get(cacheKey)

	if ok {
		glog.V(10).Infof("Found entry in cache for key `%s`, using cached response", cacheKey)

		return cachedResponse, nil
	}

	glog.V(10).Infof("No entry in cache for key `%s`, calculating", cacheKey)

	response, err := params.buildForm().Calculate()
	if err != nil {
		return nil, err
	}

	cache.Add(cacheKey, response)

	return response, nil
}

// HandleHealthCheck handles a health check request. It always returns a 204 No Content response.
func HandleHealthCheck(resp http.ResponseWriter, req *http.Request) {
	glog.V(10).Infof("Handling health check request from %s to URL `%s` with pattern %s",
		req.RemoteAddr, req.URL, req.Pattern)

	resp.WriteHeader(http.StatusNoContent)
}
