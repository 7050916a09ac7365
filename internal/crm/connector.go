package crm

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/platform/config"
	"boothlead_backend/platform/logger"
)

// Connector simulates a CRM API client. Latency and failure rate are
// configurable so demos feel like a real integration; the seed makes test
// runs reproducible.
type Connector struct {
	platform Platform
	latency  time.Duration
	failRate float64
	log      *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewConnector builds a connector from configuration. A zero seed falls
// back to the current time.
func NewConnector(cfg config.CRMConfig, log *logger.Logger) *Connector {
	seed := cfg.GetCRMRandomSeed()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Connector{
		platform: Platform(cfg.GetCRMPlatform()),
		latency:  cfg.GetCRMSyncLatency(),
		failRate: cfg.GetCRMFailureRate(),
		log:      log,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Platform returns the configured target platform.
func (c *Connector) Platform() Platform {
	return c.platform
}

// Connect validates the API key and simulates the connection handshake.
func (c *Connector) Connect(ctx context.Context, apiKey string) error {
	if err := c.sleep(ctx); err != nil {
		return err
	}
	if len(apiKey) < 10 {
		return fmt.Errorf("invalid API key format")
	}
	if !c.platform.Valid() {
		return fmt.Errorf("unsupported CRM platform %q", c.platform)
	}
	return nil
}

// SyncLead pushes one mapped lead payload. Returns the remote record id on
// success; failures are simulated network timeouts at the configured rate.
func (c *Connector) SyncLead(ctx context.Context, lead repository.Lead) (string, error) {
	if err := c.sleep(ctx); err != nil {
		return "", err
	}
	if c.roll() < c.failRate {
		return "", fmt.Errorf("failed to sync %s: network timeout", lead.FullName())
	}

	payload := MapLead(lead, c.platform)
	c.log.Debug("CRM payload mapped",
		"platform", string(c.platform),
		"leadId", lead.ID.String(),
		"fields", len(payload),
	)

	return fmt.Sprintf("%s-%08x", c.platform, c.randUint32()), nil
}

// EnrichedData is the mock firmographic profile an enrichment pass returns.
type EnrichedData struct {
	CompanySize   string `json:"companySize,omitempty"`
	Industry      string `json:"industry,omitempty"`
	AnnualRevenue string `json:"annualRevenue,omitempty"`
	WebsiteURL    string `json:"websiteUrl,omitempty"`
	LinkedInURL   string `json:"linkedInUrl,omitempty"`
	JobTitle      string `json:"jobTitle,omitempty"`
}

var (
	companySizes = []string{"1-10", "11-50", "51-200", "201-500", "500+"}
	industries   = []string{"Retail", "Distribution", "Convenience Stores", "Smoke Shops", "Vape Shops"}
	revenues     = []string{"<$100K", "$100K-$500K", "$500K-$1M", "$1M-$5M", "$5M+"}
)

// Enrich simulates a CRM enrichment lookup. Wholesale businesses bias
// toward the higher revenue bands.
func (c *Connector) Enrich(ctx context.Context, lead repository.Lead) (EnrichedData, error) {
	if err := c.sleep(ctx); err != nil {
		return EnrichedData{}, err
	}

	var enriched EnrichedData
	if lead.BusinessName != nil && *lead.BusinessName != "" {
		enriched.CompanySize = companySizes[c.randN(len(companySizes))]
		enriched.Industry = industries[c.randN(len(industries))]
		if lead.BusinessType == domain.BusinessTypeWholesale {
			enriched.AnnualRevenue = revenues[c.randN(2)+2]
		} else {
			enriched.AnnualRevenue = revenues[c.randN(3)]
		}
		enriched.WebsiteURL = fmt.Sprintf("https://%s.com", slugify(*lead.BusinessName))
	}
	if lead.FirstName != "" && lead.LastName != nil && *lead.LastName != "" {
		enriched.LinkedInURL = fmt.Sprintf("https://linkedin.com/in/%s-%s",
			strings.ToLower(lead.FirstName), strings.ToLower(*lead.LastName))
		if lead.BusinessType == domain.BusinessTypeWholesale {
			enriched.JobTitle = "Purchasing Manager"
		} else {
			enriched.JobTitle = "Store Owner"
		}
	}
	return enriched, nil
}

func (c *Connector) sleep(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Connector) roll() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64()
}

func (c *Connector) randN(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}

func (c *Connector) randUint32() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Uint32()
}

func slugify(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
