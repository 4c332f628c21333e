package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"cpr/internal/domain"
	"cpr/internal/storage"
)

// FailureViewer browses the failing runs of the last session in a TUI
type FailureViewer struct {
	storage   storage.Storage
	formatter *Formatter
	out       io.Writer
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.Storage, formatter *Formatter, out io.Writer) *FailureViewer {
	return &FailureViewer{storage: st, formatter: formatter, out: out}
}

// View displays failing runs; 'r' toggles resolved and saves it back
func (fv *FailureViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		fv.formatter.PrintMetaStats(results.Meta)
		fmt.Fprintln(fv.out, color.GreenString("✓ No test failures found!"))
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i := range results.Details {
		list.AddItem(listItemText(results.Details[i], i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsView, 0, 1, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(results))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		failure := results.Details[index]
		statsView.SetText(failureStats(failure))
		detailsView.SetText(tview.TranslateANSI(tview.Escape(failure.Output))).ScrollToBeginning()
	}

	var saveErr error
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'r', 'R':
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					results.Details[index].Resolved = !results.Details[index].Resolved
					list.SetItemText(index, listItemText(results.Details[index], index), "")
					updateHeader()
					if err := fv.storage.SaveOutput(results); err != nil {
						saveErr = err
					}
				}
				return nil
			case 'q':
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("failed to save resolved status: %w", saveErr)
	}
	return nil
}

func listItemText(failure domain.TestFailure, index int) string {
	label := tview.Escape(failure.Case().Label())
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, label)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, label)
}

func headerText(results *domain.TestResultsOutput) string {
	unresolved := 0
	for _, f := range results.Details {
		if !f.Resolved {
			unresolved++
		}
	}
	return fmt.Sprintf(" Failing runs (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] resolve, → output, ← back, [yellow]q[white] quit ", len(results.Details), unresolved)
}

func failureStats(failure domain.TestFailure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[cyan]test:[white] [yellow]%s[white]", tview.Escape(failure.Case().Label()))
	if loc := failure.Case().Location(); loc != "" {
		fmt.Fprintf(&b, "  [cyan]at:[white] %s", tview.Escape(loc))
	}
	duration := "n/a"
	if failure.Duration >= 0 {
		duration = fmt.Sprintf("%.3fs", failure.Duration)
	}
	fmt.Fprintf(&b, "\n[cyan]run:[white] #%d  [cyan]exit:[white] [red]%d[white]  [cyan]duration:[white] %s", failure.Index+1, failure.ExitCode, duration)
	return b.String()
}
