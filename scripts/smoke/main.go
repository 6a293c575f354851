// Command smoke probes a running review-api instance and reports which
// endpoints answer with the expected status. Intended for deploy checks.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type probe struct {
	Method   string
	Path     string
	Expect   int
	Auth     bool
	Critical bool
}

type result struct {
	Probe    probe
	Status   int
	OK       bool
	Err      error
	Duration time.Duration
}

var probes = []probe{
	{Method: http.MethodGet, Path: "/health", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/ready", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/metrics", Expect: http.StatusOK},
	{Method: http.MethodGet, Path: "/employees", Expect: http.StatusOK, Auth: true, Critical: true},
	{Method: http.MethodGet, Path: "/employees/edits", Expect: http.StatusOK, Auth: true},
	{Method: http.MethodGet, Path: "/pages", Expect: http.StatusOK, Auth: true, Critical: true},
	{Method: http.MethodGet, Path: "/analytics/salary-summary", Expect: http.StatusOK, Auth: true},
}

func main() {
	var (
		base     string
		username string
		password string
		timeout  time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "review-api base URL")
	flag.StringVar(&username, "username", "", "operator username, enables authenticated probes")
	flag.StringVar(&password, "password", "", "operator password")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	token := ""
	if username != "" {
		var err error
		token, err = login(client, base, username, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			os.Exit(1)
		}
	}

	var failures int
	for _, p := range probes {
		if p.Auth && token == "" {
			continue
		}
		res := run(client, base, token, p)
		mark := "ok"
		if !res.OK {
			mark = "FAIL"
			if p.Critical {
				failures++
			}
		}
		if res.Err != nil {
			fmt.Printf("%-4s %-40s %s (%v)\n", p.Method, p.Path, mark, res.Err)
			continue
		}
		fmt.Printf("%-4s %-40s %s status=%d want=%d in %s\n", p.Method, p.Path, mark, res.Status, p.Expect, res.Duration.Round(time.Millisecond))
	}

	if failures > 0 {
		fmt.Printf("critical failures: %d\n", failures)
		os.Exit(1)
	}
}

func login(client *http.Client, base, username, password string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := client.Post(base+"/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var envelope struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", err
	}
	if envelope.Data.AccessToken == "" {
		return "", fmt.Errorf("no access token in response")
	}
	return envelope.Data.AccessToken, nil
}

func run(client *http.Client, base, token string, p probe) result {
	res := result{Probe: p}
	req, err := http.NewRequest(p.Method, base+p.Path, nil)
	if err != nil {
		res.Err = err
		return res
	}
	if p.Auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	res.Status = resp.StatusCode
	res.OK = resp.StatusCode == p.Expect
	return res
}
