package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/makeup-catalog/internal/adapter/render"
	"github.com/niksmo/makeup-catalog/internal/core/catalog"
	"github.com/niksmo/makeup-catalog/internal/core/controls"
	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/niksmo/makeup-catalog/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type stubLoader struct {
	c   *catalog.Catalog
	ps  []domain.Product
	err error
}

func (l stubLoader) LoadCatalog(ctx context.Context) error {
	if l.err != nil {
		return l.err
	}
	l.c.Load(l.ps)
	return nil
}

// blockingLoader stands in for an upstream that never answers.
type blockingLoader struct{}

func (blockingLoader) LoadCatalog(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func ptr(v float64) *float64 { return &v }

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Lip Gloss", Brand: "Nyx", ProductType: "lipstick", Price: ptr(10), Rating: ptr(5)},
		{ID: "2", Name: "Blush Duo", Brand: "Maybelline", ProductType: "blush", Price: ptr(3), Rating: ptr(4)},
		{ID: "3", Name: "Lip Liner", ProductType: "lip_liner"},
	}
}

func newModel(t *testing.T, loadErr error) (Model, *controls.Controls, *controls.DebouncedInput) {
	t.Helper()
	return newModelWith(t, t.Context(), func(c *catalog.Catalog) port.CatalogLoader {
		return stubLoader{c: c, ps: testProducts(), err: loadErr}
	})
}

func newModelWith(
	t *testing.T,
	ctx context.Context,
	loaderFor func(*catalog.Catalog) port.CatalogLoader,
	opts ...Opt,
) (Model, *controls.Controls, *controls.DebouncedInput) {
	t.Helper()

	c := catalog.New()
	sorter := catalog.NewSorter(language.BrazilianPortuguese)
	ctl := controls.New(c, sorter, false)
	in := controls.NewDebouncedInput(100 * time.Millisecond)
	t.Cleanup(in.Stop)

	price, err := render.NewPriceFormatter(
		render.DefaultLocale, render.DefaultCurrency, render.DefaultExchangeRate,
	)
	require.NoError(t, err)

	m := New(ctx, loaderFor(c), ctl, in, render.NewProjector(price, ""), opts...)
	return m, ctl, in
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.load()()
	m, _ = update(t, m, msg)
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelLoading(t *testing.T) {
	t.Run("SpinnerUntilLoaded", func(t *testing.T) {
		m, _, _ := newModel(t, nil)
		assert.Contains(t, m.View(), "Loading products")

		m = loaded(t, m)
		view := m.View()
		assert.NotContains(t, view, "Loading products")
		assert.Contains(t, view, "3 products")
		assert.Contains(t, view, "Lip Gloss")
		assert.Contains(t, view, "R$")
	})

	t.Run("LoadFailure", func(t *testing.T) {
		m, ctl, _ := newModel(t, errors.New("connection refused"))
		m = loaded(t, m)

		assert.Contains(t, m.View(), "Error loading products")
		assert.Empty(t, ctl.Active())

		m, _ = update(t, m, key(tea.KeyTab))
		m, _ = update(t, m, key(tea.KeyRight))
		assert.Empty(t, ctl.Criteria().Brand)
	})
}

func TestModelLoadTimeout(t *testing.T) {
	m, ctl, _ := newModelWith(t, t.Context(),
		func(*catalog.Catalog) port.CatalogLoader { return blockingLoader{} },
		LoadTimeoutOpt(20*time.Millisecond),
	)

	done := make(chan tea.Msg, 1)
	go func() { done <- m.load()() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(time.Second):
		t.Fatal("load did not time out")
	}

	m, _ = update(t, m, msg)
	assert.Contains(t, m.View(), "Error loading products")
	assert.Empty(t, ctl.Active())
}

func TestModelControls(t *testing.T) {
	t.Run("BrandSelector", func(t *testing.T) {
		m, ctl, _ := newModel(t, nil)
		m = loaded(t, m)

		m, _ = update(t, m, key(tea.KeyTab))
		require.Equal(t, fieldBrand, m.focus)

		m, _ = update(t, m, key(tea.KeyRight))
		assert.Equal(t, "maybelline", ctl.Criteria().Brand)
		assert.Contains(t, m.View(), "Blush Duo")
		assert.NotContains(t, m.View(), "Lip Gloss")

		m, _ = update(t, m, key(tea.KeyLeft))
		assert.Empty(t, ctl.Criteria().Brand)
		assert.Len(t, ctl.Active(), 3)

		m, _ = update(t, m, key(tea.KeyLeft))
		assert.Equal(t, "nyx", ctl.Criteria().Brand)
	})

	t.Run("SortSelector", func(t *testing.T) {
		m, ctl, _ := newModel(t, nil)
		m = loaded(t, m)

		m, _ = update(t, m, key(tea.KeyShiftTab))
		require.Equal(t, fieldSort, m.focus)

		m, _ = update(t, m, key(tea.KeyRight))
		assert.Equal(t, domain.SortPriceAsc, ctl.SortKey())
		active := ctl.Active()
		require.Len(t, active, 3)
		assert.Equal(t, "3", active[0].ID)
		assert.Contains(t, m.View(), domain.SortPriceAsc.Label())
	})

	t.Run("QuitOutsideNameField", func(t *testing.T) {
		m, _, _ := newModel(t, nil)
		m = loaded(t, m)

		m, cmd := update(t, m, runes("q"))
		assert.Equal(t, "q", m.name.Value())

		m, _ = update(t, m, key(tea.KeyTab))
		_, cmd = update(t, m, runes("q"))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})

	t.Run("CtrlCQuits", func(t *testing.T) {
		m, _, _ := newModel(t, nil)
		_, cmd := update(t, m, key(tea.KeyCtrlC))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})
}

func TestModelNameInput(t *testing.T) {
	t.Run("KeystrokesSettleIntoOneCommit", func(t *testing.T) {
		m, ctl, in := newModel(t, nil)
		m = loaded(t, m)
		before := ctl.Evaluations()

		for _, r := range "Lip" {
			m, _ = update(t, m, runes(string(r)))
		}
		assert.Equal(t, before, ctl.Evaluations())

		var text string
		select {
		case text = <-in.Commits():
		case <-time.After(time.Second):
			t.Fatal("no commit")
		}
		assert.Equal(t, "Lip", text)

		m, cmd := update(t, m, nameCommittedMsg(text))
		assert.NotNil(t, cmd)
		assert.Equal(t, before+1, ctl.Evaluations())
		assert.Len(t, ctl.Active(), 2)
		assert.NotContains(t, m.View(), "Blush Duo")

		_, _ = update(t, m, nameCommittedMsg(text))
		assert.Equal(t, before+1, ctl.Evaluations())
	})

	t.Run("TypedBeforeLoadIsAppliedOnLoad", func(t *testing.T) {
		m, ctl, _ := newModel(t, nil)
		m, _ = update(t, m, runes("Blush"))
		m, _ = update(t, m, nameCommittedMsg("Blush"))
		assert.Empty(t, ctl.Criteria().Name)

		m = loaded(t, m)
		assert.Equal(t, "Blush", ctl.Criteria().Name)
		assert.Len(t, ctl.Active(), 1)
	})
}

func TestModelNameFlush(t *testing.T) {
	m, ctl, in := newModelWith(t, t.Context(), func(c *catalog.Catalog) port.CatalogLoader {
		return stubLoader{c: c, ps: testProducts()}
	})
	m = loaded(t, m)

	m, _ = update(t, m, runes("Blush"))
	assert.True(t, in.Pending())
	assert.Contains(t, m.View(), "…")

	m, _ = update(t, m, key(tea.KeyEnter))
	assert.False(t, in.Pending())

	var text string
	select {
	case text = <-in.Commits():
	default:
		t.Fatal("enter did not commit the name")
	}
	assert.Equal(t, "Blush", text)

	_, _ = update(t, m, nameCommittedMsg(text))
	assert.Len(t, ctl.Active(), 1)
}

func TestModelWaitForCommitStops(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	m, _, _ := newModelWith(t, ctx, func(c *catalog.Catalog) port.CatalogLoader {
		return stubLoader{c: c, ps: testProducts()}
	})

	done := make(chan tea.Msg, 1)
	go func() { done <- m.waitForCommit()() }()
	cancel()

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("commit wait outlived its context")
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 0, wrap(3, 3))
	assert.Equal(t, 2, wrap(-1, 3))
	assert.Equal(t, 1, wrap(1, 3))
}
