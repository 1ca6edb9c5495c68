package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"riskwatch/internal/catalog"
	"riskwatch/internal/model"
	"riskwatch/internal/scoring"
	"riskwatch/internal/storage"
)

// selectAllSentinel selects every category in one token.
const selectAllSentinel = "all"

// UpdateSession runs the interactive assessment update procedure: a
// single-threaded prompt loop that edits selected categories on a working
// copy, recomputes aggregates, and persists only if the operator confirms.
//
// Input handling is deliberately lenient: an empty answer keeps the current
// value, and a malformed answer (non-numeric score, unrecognized trend) is
// silently ignored rather than re-prompted. This is an operator tool for a
// trusted analyst, not a validation surface.
type UpdateSession struct {
	store    *storage.Store
	catalog  *catalog.Catalog
	reader   *bufio.Reader
	writer   io.Writer
	progress *progressbar.ProgressBar
	editDate string
}

// NewUpdateSession creates a session reading operator input from reader and
// writing prompts to writer. Nil reader/writer default to stdin/stdout.
func NewUpdateSession(store *storage.Store, cat *catalog.Catalog, reader io.Reader, writer io.Writer) *UpdateSession {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &UpdateSession{
		store:    store,
		catalog:  cat,
		reader:   bufio.NewReader(reader),
		writer:   writer,
		editDate: model.Today(),
	}
}

// SetEditDate overrides the date stamped onto edited categories. Used by
// tests; defaults to today.
func (s *UpdateSession) SetEditDate(date string) {
	s.editDate = date
}

// Run executes the full session. If the operator selects no categories or
// declines to save, the persisted assessment is left untouched.
func (s *UpdateSession) Run(ctx context.Context) error {
	loaded, err := s.store.Load()
	if err != nil {
		return err
	}
	working := loaded.Clone()

	s.printHeader(working)

	selected, err := s.selectCategories(ctx, working)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Fprintln(s.writer, FormatInfo("No categories selected; nothing to update."))
		return nil
	}

	s.initProgressBar(len(selected))

	for _, id := range selected {
		if err := s.editCategory(ctx, working, id); err != nil {
			return err
		}
		if s.progress != nil {
			if err := s.progress.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}
	fmt.Fprintln(s.writer)

	if err := scoring.Recompute(s.catalog, working, s.editDate); err != nil {
		return err
	}

	s.printSummary(loaded, working)

	save, err := s.confirmSave(ctx)
	if err != nil {
		return err
	}
	if !save {
		fmt.Fprintln(s.writer, FormatWarning("Discarded all changes; assessment left untouched."))
		slog.Info("Update session discarded", "categories", len(selected))
		return nil
	}

	if err := s.store.Persist(working); err != nil {
		return err
	}

	fmt.Fprintln(s.writer, FormatSuccess(fmt.Sprintf("Saved assessment (overall %.1f, %s).",
		working.OverallScore, working.RiskLevel)))
	slog.Info("Update session saved", "categories", len(selected), "overall", working.OverallScore)

	return nil
}

func (s *UpdateSession) printHeader(a *model.Assessment) {
	content := fmt.Sprintf("Period: %s\nLast assessed: %s\nOverall: %.1f (%s)",
		a.AssessmentPeriod, a.AssessmentDate, a.OverallScore, a.RiskLevel)
	fmt.Fprintln(s.writer, RenderBox(GlobeIcon+" Assessment Update", content))
}

// selectCategories prompts for the set of categories to edit. The answer is
// a comma- or space-separated list of numbers or ids, or "all". Unknown
// tokens are ignored; duplicates collapse; an empty answer selects nothing.
func (s *UpdateSession) selectCategories(ctx context.Context, a *model.Assessment) ([]string, error) {
	ids := s.catalog.CategoryIDs()

	fmt.Fprintln(s.writer, InfoStyle.Render("Categories:"))
	for i, id := range ids {
		cat, _ := s.catalog.Category(id)
		cs := a.Scores[id]
		fmt.Fprintf(s.writer, "  [%2d] %-28s score %2d  %s\n", i+1, cat.Name, cs.Score, cs.Trend)
	}
	fmt.Fprintln(s.writer)

	answer, err := s.readLine(ctx, "Categories to update (numbers/ids, comma-separated, or 'all')")
	if err != nil {
		return nil, err
	}

	tokens := strings.FieldsFunc(answer, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	picked := make(map[string]bool, len(ids))
	var selected []string
	add := func(id string) {
		if !picked[id] {
			picked[id] = true
			selected = append(selected, id)
		}
	}

	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if tok == selectAllSentinel {
			for _, id := range ids {
				add(id)
			}
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil {
			if n >= 1 && n <= len(ids) {
				add(ids[n-1])
			}
			continue
		}
		if _, ok := s.catalog.Category(tok); ok {
			add(tok)
		}
		// Anything else is silently ignored.
	}

	return selected, nil
}

func (s *UpdateSession) editCategory(ctx context.Context, a *model.Assessment, id string) error {
	cat, _ := s.catalog.Category(id)
	cs := a.Scores[id]

	content := fmt.Sprintf("Domain: %s\nScore: %d    Trend: %s\nLast updated: %s",
		s.catalog.DomainName(cat.Domain), cs.Score, cs.Trend, cs.LastUpdated)
	if len(cs.KeyFindings) > 0 {
		content += "\n\nKey findings:"
		for _, f := range cs.KeyFindings {
			content += "\n  • " + f
		}
	}
	if len(cs.Sources) > 0 {
		content += "\n\nSources:"
		for _, src := range cs.Sources {
			content += "\n  • " + SubtleStyle.Render(src)
		}
	}
	fmt.Fprintln(s.writer, RenderBox(cat.Name, content))

	var patch model.CategoryPatch

	answer, err := s.readLine(ctx, fmt.Sprintf("New score 1-10 [%d]", cs.Score))
	if err != nil {
		return err
	}
	if answer != "" {
		if n, convErr := strconv.Atoi(answer); convErr == nil {
			patch.Score = &n
		}
	}

	answer, err = s.readLine(ctx, fmt.Sprintf("Trend (i)ncreasing/(s)table/(d)ecreasing [%s]", cs.Trend))
	if err != nil {
		return err
	}
	if trend, ok := model.ParseTrend(answer); ok {
		patch.Trend = &trend
	}

	patch.KeyFindings, err = s.readList(ctx, "key findings")
	if err != nil {
		return err
	}

	patch.Sources, err = s.readList(ctx, "sources")
	if err != nil {
		return err
	}

	return s.store.ApplyCategoryEdit(a, id, patch, s.editDate)
}

// readList collects replacement entries one per line, ending on a blank
// line. An empty first line keeps the existing list (nil patch field).
func (s *UpdateSession) readList(ctx context.Context, what string) ([]string, error) {
	fmt.Fprintln(s.writer, SubtleStyle.Render(
		fmt.Sprintf("New %s, one per line; blank line finishes; blank first line keeps current.", what)))

	var entries []string
	for {
		line, err := s.readLine(ctx, "  •")
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		entries = append(entries, line)
	}

	return entries, nil
}

func (s *UpdateSession) printSummary(before, after *model.Assessment) {
	content := fmt.Sprintf("Overall: %.1f → %.1f (%s)\n",
		before.OverallScore, after.OverallScore, after.RiskLevel)
	for _, domainID := range s.catalog.DomainIDs() {
		content += fmt.Sprintf("\n%-36s %.2f → %.2f",
			s.catalog.DomainName(domainID),
			before.DomainScores[domainID],
			after.DomainScores[domainID])
	}
	fmt.Fprintln(s.writer, RenderBox(ChartIcon+" Recomputed Scores", content))
}

func (s *UpdateSession) confirmSave(ctx context.Context) (bool, error) {
	answer, err := s.readLine(ctx, "Save changes? [y/N]")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (s *UpdateSession) readLine(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if _, err := fmt.Fprintf(s.writer, "%s: ", FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	input, err := s.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("input terminated")
		}
		return "", err
	}

	return strings.TrimSpace(input), nil
}

func (s *UpdateSession) initProgressBar(total int) {
	s.progress = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(s.writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("Updating categories..."),
	)
}
