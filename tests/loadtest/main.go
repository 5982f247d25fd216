// Command loadtest drives a development-mode survey server with a mix of
// submissions, status checks and admin reads.
package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

const devUserID = "dev_user_12345"

var (
	genders     = []string{"male", "female", "other"}
	frequencies = []string{"daily", "weekly", "monthly", "rarely"}
	ageBrackets = []string{"10-19", "20-29", "30-39", "40-49", "50-59", "60+"}
)

type options struct {
	baseURL  string
	workers  int
	duration time.Duration
}

type result struct {
	endpoint string
	latency  time.Duration
	failed   bool
}

type endpointStats struct {
	count     int
	errors    int
	latencies []time.Duration
}

type scenario struct {
	name   string
	weight float64
	run    func(c *client, rng *rand.Rand) result
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Load generator for a survey server running with SURVEY_DEV_MODE=true",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVar(&opts.baseURL, "url", "http://127.0.0.1:8000", "server base url")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 50, "concurrent workers")
	cmd.Flags().DurationVar(&opts.duration, "duration", 10*time.Second, "duration of each phase")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts *options) error {
	c := newClient(opts.baseURL)

	fmt.Println("=== Survey Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n\n", opts.baseURL, opts.workers, opts.duration)

	fmt.Print("Waiting for server... ")
	if err := c.waitHealthy(30, 200*time.Millisecond); err != nil {
		fmt.Println("FAILED")
		return err
	}
	fmt.Println("OK")

	phases := []struct {
		title     string
		scenarios []scenario
	}{
		{"Submissions only", []scenario{
			{"POST /survey/submit", 1, submit},
		}},
		{"Mixed (50% submit, 30% status, 20% results)", []scenario{
			{"POST /survey/submit", 0.5, submit},
			{"POST /user/status", 0.3, status},
			{"GET /survey/results", 0.2, results},
		}},
		{"Read heavy (10% submit, 90% reads)", []scenario{
			{"POST /survey/submit", 0.1, submit},
			{"POST /user/status", 0.3, status},
			{"GET /user/:id/latest-response", 0.2, latest},
			{"GET /survey/results", 0.4, results},
		}},
	}

	for _, p := range phases {
		fmt.Printf("\n--- %s ---\n", p.title)
		printResults(runPhase(c, opts, p.scenarios), opts.duration)
	}
	return nil
}

func runPhase(c *client, opts *options, scenarios []scenario) map[string]*endpointStats {
	results := make(chan result, 10000)
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < opts.workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- pick(scenarios, rng).run(c, rng)
				}
			}
		}(time.Now().UnixNano() + int64(i))
	}

	collected := make(map[string]*endpointStats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := collected[r.endpoint]
			if !ok {
				s = &endpointStats{}
				collected[r.endpoint] = s
			}
			s.count++
			if r.failed {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(opts.duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	return collected
}

func pick(scenarios []scenario, rng *rand.Rand) scenario {
	r := rng.Float64()
	for _, s := range scenarios {
		if r < s.weight {
			return s
		}
		r -= s.weight
	}
	return scenarios[len(scenarios)-1]
}

func submit(c *client, rng *rand.Rand) result {
	body := map[string]string{
		"age":          ageBrackets[rng.Intn(len(ageBrackets))],
		"gender":       genders[rng.Intn(len(genders))],
		"frequency":    frequencies[rng.Intn(len(frequencies))],
		"satisfaction": fmt.Sprintf("%d", rng.Intn(5)+1),
	}
	if rng.Float64() < 0.3 {
		body["feedback"] = "load test feedback"
	}
	return c.do("POST /survey/submit", http.MethodPost, "/survey/submit", body)
}

func status(c *client, _ *rand.Rand) result {
	return c.do("POST /user/status", http.MethodPost, "/user/status", map[string]string{"userId": devUserID})
}

func latest(c *client, _ *rand.Rand) result {
	return c.do("GET /user/:id/latest-response", http.MethodGet, "/user/"+devUserID+"/latest-response", nil)
}

func results(c *client, rng *rand.Rand) result {
	path := fmt.Sprintf("/survey/results?limit=%d&offset=%d", rng.Intn(100)+1, rng.Intn(50))
	return c.do("GET /survey/results", http.MethodGet, path, nil)
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        200,
				MaxIdleConnsPerHost: 200,
				IdleConnTimeout:     30 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   2 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		},
	}
}

func (c *client) waitHealthy(attempts int, interval time.Duration) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		resp, err := c.http.Get(c.baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			lastErr = fmt.Errorf("health returned %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		time.Sleep(interval)
	}
	return fmt.Errorf("server not responding: %w", lastErr)
}

// do sends the request and counts anything but a 200 success envelope as a
// failure. A missing latest response is a valid answer.
func (c *client) do(endpoint, method, path string, payload any) result {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return result{endpoint: endpoint, failed: true}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return result{endpoint: endpoint, failed: true}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint: endpoint, latency: lat, failed: true}
	}
	defer resp.Body.Close()

	var env struct {
		Success bool `json:"success"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	failed := resp.StatusCode != http.StatusOK || decodeErr != nil
	if !failed && !env.Success && !strings.Contains(endpoint, "latest-response") {
		failed = true
	}
	return result{endpoint: endpoint, latency: lat, failed: failed}
}

func printResults(collected map[string]*endpointStats, duration time.Duration) {
	var total, totalErrors int

	endpoints := make([]string, 0, len(collected))
	for ep := range collected {
		endpoints = append(endpoints, ep)
	}
	slices.Sort(endpoints)

	fmt.Printf("\n  %-30s %8s %6s %10s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 96))

	for _, ep := range endpoints {
		s := collected[ep]
		total += s.count
		totalErrors += s.errors
		slices.Sort(s.latencies)

		fmt.Printf("  %-30s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	fmt.Println("  " + strings.Repeat("-", 96))
	if total == 0 {
		fmt.Println("  No requests completed")
		return
	}
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		total, totalErrors, float64(totalErrors)/float64(total)*100, float64(total)/duration.Seconds())
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := min(int(float64(len(sorted))*p), len(sorted)-1)
	return sorted[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
