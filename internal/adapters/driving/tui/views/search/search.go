// Package search provides the search view for the TUI: a criteria form,
// a polling progress phase, and the refined case list.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/courtcheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/courtcheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/courtcheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driving"
)

// pollInterval is how often the view polls job status.
const pollInterval = 500 * time.Millisecond

// Form field indices.
const (
	fieldFirstName = iota
	fieldLastName
	fieldMiddleName
	fieldDOB
	fieldCounty
	fieldCount
)

// View drives the submit-poll-render lifecycle of one search.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	jobs driving.JobService
	ctx  context.Context

	phase messages.ViewType

	inputs     []textinput.Model
	focusIndex int

	jobID    string
	progress string
	response *domain.SearchResponse
	selected int

	err    error
	width  int
	height int
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, jobs driving.JobService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	labels := []string{"First name", "Last name", "Middle name (optional)",
		"Date of birth MM/DD/YYYY (optional)", "County (empty = all)"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 64
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldFirstName].Focus()

	return &View{
		styles: s,
		keymap: km,
		jobs:   jobs,
		ctx:    context.Background(),
		phase:  messages.ViewForm,
		inputs: inputs,
		width:  80,
		height: 24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Phase returns the active phase, exposed for tests.
func (v *View) Phase() messages.ViewType {
	return v.phase
}

// SetDimensions updates the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchSubmitted:
		if msg.Err != nil {
			v.err = msg.Err
			v.phase = messages.ViewForm
			return v, nil
		}
		v.jobID = msg.JobID
		v.progress = "Search submitted..."
		return v, v.pollCmd(msg.JobID)

	case messages.PollTick:
		if v.phase != messages.ViewSearching || msg.JobID != v.jobID {
			return v, nil
		}
		return v, v.statusCmd(msg.JobID)

	case messages.StatusUpdated:
		return v.handleStatusUpdated(msg)

	case messages.ResultLoaded:
		if msg.JobID != v.jobID {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			v.phase = messages.ViewForm
			return v, nil
		}
		v.response = msg.Response
		v.selected = 0
		v.phase = messages.ViewResults
		return v, nil
	}

	return v.updateInputs(msg)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch v.phase {
	case messages.ViewForm:
		switch {
		case keymap.Matches(keyStr, v.keymap.Submit):
			return v.submit()
		case keymap.Matches(keyStr, v.keymap.Next):
			v.focusField((v.focusIndex + 1) % fieldCount)
			return v, nil
		case keymap.Matches(keyStr, v.keymap.Prev):
			v.focusField((v.focusIndex + fieldCount - 1) % fieldCount)
			return v, nil
		}
		return v.updateInputs(msg)

	case messages.ViewSearching:
		// Nothing to drive while polling; quit is handled by the app.
		return v, nil

	case messages.ViewResults:
		switch {
		case keymap.Matches(keyStr, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(keyStr, v.keymap.Down):
			if v.response != nil && v.selected < len(v.response.Cases)-1 {
				v.selected++
			}
		case keymap.Matches(keyStr, v.keymap.NewSearch),
			keymap.Matches(keyStr, v.keymap.Back):
			v.reset()
		}
		return v, nil
	}

	return v, nil
}

// submit validates nothing locally; the job service owns validation and
// an invalid form comes back as a SearchSubmitted error.
func (v *View) submit() (*View, tea.Cmd) {
	criteria := domain.SearchCriteria{
		FirstName:   v.inputs[fieldFirstName].Value(),
		LastName:    v.inputs[fieldLastName].Value(),
		MiddleName:  v.inputs[fieldMiddleName].Value(),
		DateOfBirth: v.inputs[fieldDOB].Value(),
		County:      v.inputs[fieldCounty].Value(),
	}

	v.err = nil
	v.phase = messages.ViewSearching
	v.progress = "Submitting search..."

	return v, func() tea.Msg {
		jobID, err := v.jobs.Submit(v.ctx, criteria)
		return messages.SearchSubmitted{JobID: jobID, Err: err}
	}
}

func (v *View) handleStatusUpdated(msg messages.StatusUpdated) (*View, tea.Cmd) {
	if msg.JobID != v.jobID {
		return v, nil
	}
	if msg.Err != nil {
		v.err = msg.Err
		v.phase = messages.ViewForm
		return v, nil
	}

	if msg.Info.Message != "" {
		v.progress = msg.Info.Message
	}

	switch msg.Info.Status {
	case domain.JobStatusComplete:
		return v, v.resultCmd(msg.JobID)
	case domain.JobStatusError:
		v.err = fmt.Errorf("search failed: %s", msg.Info.Message)
		v.phase = messages.ViewForm
		return v, nil
	}

	return v, v.pollCmd(msg.JobID)
}

// pollCmd schedules the next status poll.
func (v *View) pollCmd(jobID string) tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return messages.PollTick{JobID: jobID}
	})
}

// statusCmd fetches the current job status.
func (v *View) statusCmd(jobID string) tea.Cmd {
	return func() tea.Msg {
		info, err := v.jobs.Status(v.ctx, jobID)
		return messages.StatusUpdated{JobID: jobID, Info: info, Err: err}
	}
}

// resultCmd fetches the assembled result of a completed job.
func (v *View) resultCmd(jobID string) tea.Cmd {
	return func() tea.Msg {
		response, err := v.jobs.Result(v.ctx, jobID)
		return messages.ResultLoaded{JobID: jobID, Response: response, Err: err}
	}
}

func (v *View) updateInputs(msg tea.Msg) (*View, tea.Cmd) {
	cmds := make([]tea.Cmd, len(v.inputs))
	for i := range v.inputs {
		v.inputs[i], cmds[i] = v.inputs[i].Update(msg)
	}
	return v, tea.Batch(cmds...)
}

func (v *View) focusField(index int) {
	v.focusIndex = index
	for i := range v.inputs {
		if i == index {
			v.inputs[i].Focus()
			continue
		}
		v.inputs[i].Blur()
	}
}

// reset returns to a blank form for a new search.
func (v *View) reset() {
	for i := range v.inputs {
		v.inputs[i].SetValue("")
	}
	v.focusField(fieldFirstName)
	v.jobID = ""
	v.progress = ""
	v.response = nil
	v.selected = 0
	v.err = nil
	v.phase = messages.ViewForm
}

// View renders the active phase.
func (v *View) View() string {
	switch v.phase {
	case messages.ViewSearching:
		return v.viewSearching()
	case messages.ViewResults:
		return v.viewResults()
	default:
		return v.viewForm()
	}
}

func (v *View) viewForm() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Court Records Search"))
	b.WriteString("\n\n")

	for i := range v.inputs {
		b.WriteString(v.styles.InputField.Render(v.inputs[i].View()))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("tab: next field • enter: search • ctrl+c: quit"))
	return b.String()
}

func (v *View) viewSearching() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Searching..."))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render(v.progress))
	b.WriteString("\n")
	return b.String()
}

func (v *View) viewResults() string {
	var b strings.Builder
	r := v.response

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Results: %s %s",
		r.SearchCriteria.FirstName, r.SearchCriteria.LastName)))
	b.WriteString("\n")
	summary := fmt.Sprintf("%d cases (%d open, %d closed)",
		r.Summary.TotalCases, r.Summary.OpenCases, r.Summary.ClosedCases)
	if r.Summary.HasOpenCases {
		b.WriteString(v.styles.Open.Render(summary))
	} else {
		b.WriteString(v.styles.Success.Render(summary))
	}
	b.WriteString("\n\n")

	if r.Summary.TotalCases == 0 {
		b.WriteString(v.styles.Muted.Render("No relevant cases found."))
		b.WriteString("\n")
	}

	for i, c := range r.Cases {
		line := fmt.Sprintf("%s  %s  %s  %s", c.CaseNumber, c.CaseType, c.FilingDate, c.Status)
		switch {
		case i == v.selected:
			b.WriteString(v.styles.Selected.Render("> " + line))
		case c.IsOpen():
			b.WriteString(v.styles.Open.Render("  " + line))
		default:
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(r.Cases) > 0 && v.selected < len(r.Cases) {
		c := r.Cases[v.selected]
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Selected case"))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("County: %s", c.County)))
		b.WriteString("\n")
		if c.Parties != "" {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Parties: %s", c.Parties)))
			b.WriteString("\n")
		}
		if c.VerificationInstructions != "" {
			b.WriteString(v.styles.Muted.Render(c.VerificationInstructions))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(r.Metadata.Note))
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓: select • n: new search • ctrl+c: quit"))
	return b.String()
}
