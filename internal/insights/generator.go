// Package insights produces short sales-facing write-ups for captured leads.
// Generation prefers Gemini when an API key is configured and always falls
// back to a local template, so callers get text on every path.
package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"boothlead_backend/internal/catalog"
	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/scoring"
	"boothlead_backend/platform/config"
	"boothlead_backend/platform/logger"
)

const systemPrompt = `You are a helpful sales assistant for a distribution company that sells vape products, smoke shop items, and convenience store items. Analyze customer preferences and provide brief, actionable insights for the sales team. Keep responses concise (2-3 paragraphs max).`

// Source tells the caller which path produced the insight text.
type Source string

const (
	SourceGemini Source = "gemini"
	SourceLocal  Source = "local"
)

// Generator builds lead insights. The zero timeout is replaced with a
// sensible default so a misconfigured value cannot hang a request.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

func NewGenerator(ctx context.Context, cfg config.InsightsConfig, log *logger.Logger) *Generator {
	g := &Generator{
		model:   cfg.GetGeminiModel(),
		timeout: cfg.GetInsightsTimeout(),
		log:     log,
	}
	if g.timeout <= 0 {
		g.timeout = 15 * time.Second
	}

	if !cfg.IsInsightsEnabled() {
		log.Info("insights running in local-only mode, no Gemini API key configured")
		return g
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Warn("failed to initialize Gemini client, falling back to local insights", "error", err)
		return g
	}

	g.client = client
	log.Info("insights generator initialized", "model", g.model)
	return g
}

// Generate returns insight text for a lead. The Gemini path is attempted
// first when available; any failure falls through to the local template,
// which cannot fail.
func (g *Generator) Generate(ctx context.Context, lead domain.Lead, breakdown scoring.Breakdown) (string, Source) {
	if g.client != nil {
		cctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		resp, err := g.client.Models.GenerateContent(cctx, g.model, genai.Text(buildPrompt(lead, breakdown)), &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		})
		if err != nil {
			g.log.Warn("Gemini insight generation failed, using local template", "lead_id", lead.ID, "error", err)
		} else if text := strings.TrimSpace(resp.Text()); text != "" {
			return text, SourceGemini
		}
	}

	return LocalInsights(lead, breakdown), SourceLocal
}

func buildPrompt(lead domain.Lead, breakdown scoring.Breakdown) string {
	var b strings.Builder
	b.WriteString("Analyze this trade show lead and provide insights:\n\n")

	fmt.Fprintf(&b, "Business Type: %s\n", orNotProvided(string(lead.BusinessType)))
	fmt.Fprintf(&b, "Business Name: %s\n", orNotProvided(strOrEmpty(lead.BusinessName)))
	fmt.Fprintf(&b, "Location: %s\n", orNotProvided(location(lead)))
	fmt.Fprintf(&b, "Lead Score: %d (grade %s, %s)\n", breakdown.Total, breakdown.Grade, breakdown.Tier)
	fmt.Fprintf(&b, "Interested Brands: %s\n", joinNames(brandNames(lead.Brands)))
	fmt.Fprintf(&b, "Interested Categories: %s\n", joinNames(categoryNames(lead.Categories)))
	fmt.Fprintf(&b, "Customer Notes: %s\n", orNone(strOrEmpty(lead.Notes)))

	b.WriteString("\nProvide:\n")
	b.WriteString("1. A brief customer profile summary\n")
	b.WriteString("2. Recommended products/promotions to highlight\n")
	b.WriteString("3. Best follow-up approach based on their preferences")
	return b.String()
}

// LocalInsights renders the deterministic fallback. It only reads the lead
// snapshot and the already-computed breakdown, so two calls with the same
// inputs produce the same text.
func LocalInsights(lead domain.Lead, breakdown scoring.Breakdown) string {
	var paragraphs []string

	profile := "a retail customer focused on variety and trending products"
	if lead.BusinessType == domain.BusinessTypeWholesale {
		profile = "a wholesale buyer likely looking for bulk pricing and consistent supply"
	}
	line := "Customer Profile: This is " + profile
	if name := strOrEmpty(lead.BusinessName); name != "" {
		line += " from " + name
	}
	if loc := location(lead); loc != "" {
		line += " in " + loc
	}
	paragraphs = append(paragraphs, line+".")

	paragraphs = append(paragraphs, fmt.Sprintf(
		"Lead Quality: Scored %d out of 100 (grade %s) with %s engagement.",
		breakdown.Total, breakdown.Grade, breakdown.Tier))

	if brands := brandNames(lead.Brands); len(brands) > 0 {
		insight := "Focused interest in " + strings.Join(brands, " and ") + " - highlight latest products from these brands"
		if len(brands) >= 4 {
			insight = "Shows strong interest across multiple brands - potential high-volume customer"
		}
		paragraphs = append(paragraphs, "Brand Preference: "+insight+".")
	}

	if priorities := categoryPriorities(lead.Categories); len(priorities) > 0 {
		closer := "Prioritize these categories in follow-up."
		if len(lead.Categories) >= 4 {
			closer = "Consider presenting a comprehensive catalog."
		}
		paragraphs = append(paragraphs, "Product Focus: Customer interested in "+strings.Join(priorities, ", ")+". "+closer)
	}

	followUp := "Send product recommendations with retail pricing. Include any current promotions or new arrivals."
	if lead.BusinessType == domain.BusinessTypeWholesale {
		followUp = "Schedule a call to discuss volume pricing, payment terms, and delivery schedules. Prepare wholesale catalog and MOQ information."
	}
	paragraphs = append(paragraphs, "Follow-up Action: "+followUp)

	if len(strOrEmpty(lead.Notes)) > 20 {
		paragraphs = append(paragraphs, "Special Note: Customer provided detailed notes - review carefully for specific requirements or questions that need addressing.")
	}

	return strings.Join(paragraphs, "\n\n")
}

// categoryPriorities maps selected categories onto sales talking points,
// in a fixed order independent of the lead's selection order.
func categoryPriorities(categories []catalog.Category) []string {
	has := make(map[catalog.Category]bool, len(categories))
	for _, c := range categories {
		has[c] = true
	}

	var priorities []string
	if has[catalog.CategoryVapes] || has[catalog.CategoryDevices] {
		priorities = append(priorities, "core vaping products")
	}
	if has[catalog.CategoryVapeJuice] {
		priorities = append(priorities, "e-liquid variety")
	}
	if has[catalog.CategoryHemp] {
		priorities = append(priorities, "hemp/CBD offerings")
	}
	if has[catalog.CategorySmokeShop] {
		priorities = append(priorities, "smoke accessories")
	}
	if has[catalog.CategoryConvenience] {
		priorities = append(priorities, "convenience items for broader inventory")
	}
	return priorities
}

func brandNames(brands []catalog.Brand) []string {
	names := make([]string, 0, len(brands))
	for _, b := range brands {
		if b.Valid() {
			names = append(names, b.Name())
		}
	}
	return names
}

func categoryNames(categories []catalog.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.Valid() {
			names = append(names, c.Name())
		}
	}
	return names
}

func location(lead domain.Lead) string {
	city := strOrEmpty(lead.City)
	state := strOrEmpty(lead.State)
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
