// Package main provides a CLI tool for validating finance server endpoints.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type endpoint struct {
	path        string
	method      string
	contentType string
	contains    []string
}

var endpoints = []endpoint{
	// API basics
	{path: "/api/health", method: "GET", contentType: "application/json", contains: []string{`"status":"ok"`}},
	{path: "/api/version", method: "GET", contentType: "application/json", contains: []string{`"version"`}},

	// Ledger
	{path: "/api/transactions", method: "GET", contentType: "application/json", contains: []string{`"transactions"`}},
	{path: "/api/categories", method: "GET", contentType: "application/json", contains: []string{`"categories"`}},
	{path: "/api/categories/suggest?description=coffee", method: "GET", contentType: "application/json", contains: []string{"Food & Dining"}},

	// Budgets and analytics
	{path: "/api/budgets", method: "GET", contentType: "application/json", contains: []string{`"budgets"`}},
	{path: "/api/budgets/alerts", method: "GET", contentType: "application/json", contains: nil},
	{path: "/api/insights", method: "GET", contentType: "application/json", contains: nil},
	{path: "/api/spending/summary", method: "GET", contentType: "application/json", contains: []string{`"total_income"`}},
	{path: "/api/balance", method: "GET", contentType: "application/json", contains: []string{`"total"`}},

	// Goals and recurring
	{path: "/api/goals", method: "GET", contentType: "application/json", contains: []string{`"goals"`}},
	{path: "/api/goals/summary", method: "GET", contentType: "application/json", contains: []string{`"total_goals"`}},
	{path: "/api/recurring", method: "GET", contentType: "application/json", contains: []string{`"recurring"`}},
	{path: "/api/recurring/upcoming", method: "GET", contentType: "application/json", contains: nil},

	// Settings
	{path: "/api/settings/currency", method: "GET", contentType: "application/json", contains: []string{`"currency"`}},
	{path: "/api/settings/currencies", method: "GET", contentType: "application/json", contains: []string{"USD"}},
	{path: "/api/settings/rates", method: "GET", contentType: "application/json", contains: []string{`"rates"`}},
	{path: "/api/settings/encryption", method: "GET", contentType: "application/json", contains: []string{`"encrypted"`}},

	// Exports
	{path: "/api/export/transactions", method: "GET", contentType: "text/csv", contains: []string{"Date,Type,Category"}},
	{path: "/api/export/monthly", method: "GET", contentType: "text/csv", contains: []string{"TOTAL"}},
	{path: "/api/export/categories", method: "GET", contentType: "text/csv", contains: []string{"Category"}},
	{path: "/api/export/tax", method: "GET", contentType: "text/csv", contains: []string{"INCOME"}},
}

type result struct {
	endpoint endpoint
	status   int
	duration time.Duration
	err      error
	body     string
}

func main() {
	url := flag.String("url", "http://localhost:8080", "Base URL of the server to validate")
	verbose := flag.Bool("v", false, "Verbose output")
	timeout := flag.Int("timeout", 10, "Request timeout in seconds")
	flag.Parse()

	client := &http.Client{
		Timeout: time.Duration(*timeout) * time.Second,
	}

	fmt.Printf("Validating server at %s\n", *url)
	fmt.Printf("Testing %d endpoints...\n\n", len(endpoints))

	var passed, failed int

	for _, ep := range endpoints {
		r := validateEndpoint(client, *url, ep)

		if r.err != nil {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Error: %v\n", r.err)
		} else if r.status != http.StatusOK {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Status: %d (expected 200)\n", r.status)
		} else {
			passed++
			if *verbose {
				fmt.Printf("PASS %s %s (%v)\n", ep.method, ep.path, r.duration)
			}
		}
	}

	fmt.Printf("\n========================================\n")
	fmt.Printf("Results: %d passed, %d failed\n", passed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func validateEndpoint(client *http.Client, baseURL string, ep endpoint) result {
	start := time.Now()

	req, err := http.NewRequest(ep.method, baseURL+ep.path, nil)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to read body: %w", err)}
	}

	duration := time.Since(start)

	r := result{
		endpoint: ep,
		status:   resp.StatusCode,
		duration: duration,
		body:     string(body),
	}

	// Validate content type
	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, ep.contentType) {
		r.err = fmt.Errorf("wrong content type: got %q, expected %q", ct, ep.contentType)
		return r
	}

	// Validate JSON if expected
	if ep.contentType == "application/json" {
		var js interface{}
		if err := json.Unmarshal(body, &js); err != nil {
			r.err = fmt.Errorf("invalid JSON: %w", err)
			return r
		}
	}

	// Validate required content
	for _, needle := range ep.contains {
		if !strings.Contains(string(body), needle) {
			r.err = fmt.Errorf("missing expected content: %q", needle)
			return r
		}
	}

	return r
}
