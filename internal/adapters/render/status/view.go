package status

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/bnema/fundme-cli/internal/application"
	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
	// FullAddresses disables the 0x1234…abcd shortening.
	FullAddresses bool
}

func renderView(status application.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("FundMe Ledger"),
		s.header.Render(fmt.Sprintf("owner: %s  feed: %s", address(status.Owner, opts), address(status.PriceFeed, opts))),
		s.section.Render(s.pool.Render(fmt.Sprintf("pool: %s ETH ($%s)", domain.FormatEther(status.Pool), domain.FormatUSD(status.PoolUSD)))),
		s.detail.Render(minimumLine(status)),
		priceLine(status.Price, opts, s),
		s.section.Render(s.header.Render(fmt.Sprintf("funders: %d", len(status.Funders)))),
	}

	if len(status.Funders) == 0 {
		lines = append(lines, s.empty.Render("No contributions this cycle."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, funder := range status.Funders {
		lines = append(lines, funderLine(i, funder, status.Pool, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func minimumLine(status application.Status) string {
	if status.MinimumNative == nil {
		return fmt.Sprintf("minimum: $%s", domain.FormatUSD(status.MinimumUSD))
	}

	return fmt.Sprintf("minimum: $%s (%s ETH at current price)", domain.FormatUSD(status.MinimumUSD), domain.FormatEther(status.MinimumNative))
}

func priceLine(price domain.Price, opts RenderOptions, s styles) string {
	label := fmt.Sprintf("price: %s USD (round %d", price.Rate(), price.RoundID)
	if !price.UpdatedAt.IsZero() {
		label += ", " + formatUpdated(price.UpdatedAt, opts.Now)
	}
	label += ")"

	line := lipgloss.NewStyle().Foreground(freshnessColor(price.UpdatedAt, opts)).Render(label)
	if !opts.Now.IsZero() && price.IsStale(opts.Now, opts.StaleAfter) {
		line += " " + s.warning.Render("[stale]")
	}

	return line
}

func funderLine(index int, funder application.FunderStatus, pool *big.Int, opts RenderOptions, s styles) string {
	percent := sharePercent(funder.Amount, pool)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.funderKey.Render(fmt.Sprintf("#%d %s", index, address(funder.Address, opts))),
		" ",
		renderProgressBar(percent, 20, s),
		" ",
		s.funderMeta.Render(fmt.Sprintf("%3.0f%%", percent)),
		" ",
		s.detail.Render(domain.FormatEther(funder.Amount)+" ETH"),
	)
}

func address(a domain.Address, opts RenderOptions) string {
	if opts.FullAddresses {
		return string(a)
	}
	return a.Short()
}

func sharePercent(amount, pool *big.Int) float64 {
	if amount == nil || pool == nil || pool.Sign() == 0 {
		return 0
	}

	share, _ := new(big.Rat).SetFrac(new(big.Int).Mul(amount, big.NewInt(100)), pool).Float64()
	return clampPercent(share)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatUpdated(updatedAt, now time.Time) string {
	if now.IsZero() {
		return "updated " + updatedAt.Format(time.RFC3339)
	}

	age := now.Sub(updatedAt)
	switch {
	case age < time.Minute:
		return "updated just now"
	case age < time.Hour:
		return pluralAgo(int(age.Minutes()), "minute")
	case age < 24*time.Hour:
		return pluralAgo(int(age.Hours()), "hour")
	default:
		return pluralAgo(int(age.Hours()/24), "day")
	}
}

func pluralAgo(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("updated 1 %s ago", unit)
	}
	return fmt.Sprintf("updated %d %ss ago", n, unit)
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp: 240 is faded, 255 is bright white.
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}

// freshnessColor fades the price line as the answer ages toward StaleAfter.
func freshnessColor(updatedAt time.Time, opts RenderOptions) lipgloss.Color {
	if opts.Now.IsZero() || updatedAt.IsZero() || opts.StaleAfter <= 0 {
		return lipgloss.Color("255")
	}

	remaining := opts.StaleAfter - opts.Now.Sub(updatedAt)
	return interpolateColor(remaining.Seconds(), 0, opts.StaleAfter.Seconds())
}
