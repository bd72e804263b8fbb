// Package tui implements the interactive migration UI.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/migration"
)

// Mode is the current UI state.
type Mode int

const (
	ModeList Mode = iota
	ModeConfirm
	ModeExecuting
	ModeComplete
	ModeError
)

// Model drives the interactive migrate up/down flow: pick a migration,
// confirm, execute under the migration lock.
type Model struct {
	mode         Mode
	action       string // "up" or "down"
	list         list.Model
	confirmation ConfirmationDialog
	logs         LogView
	err          error
	width        int
	height       int

	dbURL      string
	source     *migration.Source
	migrations []migration.Migration
	status     []migration.Record
	pool       *pgxpool.Pool
	executor   *migration.Executor

	selected  int
	completed int
}

// NewModel creates the migration UI model.
func NewModel(action, dbURL string, source *migration.Source) Model {
	l := list.New(nil, MigrationItemDelegate{}, 0, 0)
	l.Title = "Momo Schema Migrations"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		mode:   ModeList,
		action: action,
		list:   l,
		logs:   NewLogView(10),
		dbURL:  dbURL,
		source: source,
	}
}

// Init starts loading migrations.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadMigrationsCmd(m.dbURL, m.source),
		tea.EnterAltScreen,
	)
}

type migrationsLoadedMsg struct {
	migrations []migration.Migration
	status     []migration.Record
	pool       *pgxpool.Pool
	executor   *migration.Executor
}

type migrationExecutedMsg struct {
	version string
	err     error
}

type errorMsg struct {
	err error
}

func loadMigrationsCmd(dbURL string, source *migration.Source) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to connect to database: %w", err)}
		}

		executor := migration.NewExecutor(pool)
		if err := executor.Initialize(ctx); err != nil {
			pool.Close()
			return errorMsg{err: fmt.Errorf("failed to initialize migrations: %w", err)}
		}

		migrations, err := source.List()
		if err != nil {
			pool.Close()
			return errorMsg{err: fmt.Errorf("failed to list migrations: %w", err)}
		}

		status, err := executor.GetStatus(ctx, migrations)
		if err != nil {
			pool.Close()
			return errorMsg{err: fmt.Errorf("failed to get migration status: %w", err)}
		}

		return migrationsLoadedMsg{
			migrations: migrations,
			status:     status,
			pool:       pool,
			executor:   executor,
		}
	}
}

func executeMigrationCmd(executor *migration.Executor, m migration.Migration, action string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if err := executor.Lock(ctx); err != nil {
			return errorMsg{err: fmt.Errorf("failed to acquire lock: %w", err)}
		}

		var err error
		if action == "up" {
			err = executor.Apply(ctx, m, false)
		} else {
			err = executor.Rollback(ctx, m, false)
		}
		return migrationExecutedMsg{version: m.Version, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case migrationsLoadedMsg:
		m.migrations = msg.migrations
		m.status = msg.status
		m.pool = msg.pool
		m.executor = msg.executor

		items := make([]list.Item, len(msg.status))
		for i, s := range msg.status {
			appliedAt := ""
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			items[i] = MigrationItem{
				Version:   s.Version,
				Name:      s.Name,
				Status:    string(s.Status),
				AppliedAt: appliedAt,
			}
		}
		m.list.SetItems(items)
		return m, nil

	case migrationExecutedMsg:
		if msg.err != nil {
			m.mode = ModeError
			m.err = msg.err
			m.logs.Add(dangerStyle.Render("Failed: " + msg.version + " - " + msg.err.Error()))
			return m, nil
		}
		m.logs.Add(successStyle.Render("✓ Completed: " + msg.version))
		m.completed++
		m.mode = ModeComplete
		return m, nil

	case errorMsg:
		m.mode = ModeError
		m.err = msg.err
		return m, nil

	case ConfirmMsg:
		if m.mode != ModeConfirm {
			return m, nil
		}
		if !msg.Confirmed {
			m.mode = ModeList
			return m, nil
		}
		m.mode = ModeExecuting
		return m, executeMigrationCmd(m.executor, m.migrations[m.selected], m.action)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == ModeList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeList:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.pool != nil {
				m.pool.Close()
			}
			return m, tea.Quit

		case "enter", " ":
			idx := m.list.Index()
			if idx < 0 || idx >= len(m.status) {
				return m, nil
			}
			// Up applies pending migrations; down rolls back applied ones.
			if m.action == "up" && m.status[idx].Status != migration.StatusPending {
				return m, nil
			}
			if m.action == "down" && m.status[idx].Status != migration.StatusApplied {
				return m, nil
			}

			m.selected = idx
			m.confirmation = NewConfirmationDialog(
				fmt.Sprintf("Confirm Migration %s", strings.ToUpper(m.action)),
				fmt.Sprintf("Are you sure you want to %s migration:\n%s - %s",
					m.action, m.status[idx].Version, m.status[idx].Name),
			)
			m.mode = ModeConfirm
			return m, nil
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case ModeConfirm:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.mode = ModeList
			return m, nil
		default:
			return m, m.confirmation.Update(msg)
		}

	case ModeComplete, ModeError:
		switch msg.String() {
		case "ctrl+c", "q", "enter":
			if m.pool != nil {
				_ = m.executor.Unlock(context.Background())
				m.pool.Close()
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	switch m.mode {
	case ModeList:
		help := helpStyle.Render(
			FormatKey("↑/↓", "navigate") + " • " +
				FormatKey("enter", "execute") + " • " +
				FormatKey("q", "quit"),
		)
		return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), help)

	case ModeConfirm:
		return m.centered(m.confirmation.View())

	case ModeExecuting:
		body := titleStyle.Render("Executing Migration") + "\n\n" +
			infoStyle.Render(fmt.Sprintf("%s - %s",
				m.migrations[m.selected].Version, m.migrations[m.selected].Name)) + "\n\n" +
			m.logs.View()
		return m.centered(boxStyle.Render(body))

	case ModeComplete:
		body := titleStyle.Render("Migration Complete") + "\n\n" +
			successStyle.Render(fmt.Sprintf("Executed %d migration(s)", m.completed)) + "\n\n" +
			helpStyle.Render(FormatKey("enter/q", "exit"))
		return m.centered(boxStyle.Render(body))

	case ModeError:
		body := titleStyle.Render("Migration Failed") + "\n\n" +
			errorBoxStyle.Render(m.err.Error()) + "\n\n" +
			helpStyle.Render(FormatKey("enter/q", "exit"))
		return m.centered(boxStyle.Render(body))
	}
	return ""
}

func (m Model) centered(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// RunMigrateUI starts the interactive migration UI.
func RunMigrateUI(action, dbURL string, source *migration.Source) error {
	p := tea.NewProgram(NewModel(action, dbURL, source))
	_, err := p.Run()
	return err
}
