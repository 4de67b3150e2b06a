package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-garden/internal/core"
	"github.com/vovakirdan/tui-garden/internal/garden"
)

// Layout constants
const (
	sidePanelWidth = 30 // Selection panel including its border
	minFieldWidth  = 24
	minFieldHeight = 6
	chromeLines    = 3 // Header, status and help lines
)

type mode int

const (
	modeField mode = iota
	modeShop
	modeAlmanac
	modeCreator
	modeTyping
)

// Options configures a garden view.
type Options struct {
	Config core.RuntimeConfig
	Theme  Theme
	// Words feed the typing practice.
	Words []string
}

// Model is the Bubble Tea model of one garden. It owns the economy for the
// lifetime of the program: timers and key presses are all handled in Update,
// so mutations never interleave.
type Model struct {
	eco    *garden.Economy
	config core.RuntimeConfig
	theme  Theme
	keys   KeyMap
	help   help.Model
	screen *core.Screen

	mode   mode
	cursor int
	marked garden.InstanceID
	phase  garden.DayPhase
	typist *garden.Typist

	shop        table.Model
	shopEntries []garden.ShopEntry
	almanac     table.Model
	inputs      []textinput.Model
	focus       int

	status    string
	statusErr bool
	quitting  bool
}

// NewModel creates the view for eco.
func NewModel(eco *garden.Economy, opts Options) Model {
	cfg := opts.Config
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		d := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = d.ScreenW, d.ScreenH
	}
	theme := opts.Theme
	if theme.Cells == nil {
		theme = DefaultTheme()
	}

	m := Model{
		eco:    eco,
		config: cfg,
		theme:  theme,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		screen: core.NewScreen(0, 0),
		typist: garden.NewTypist(opts.Words, newRand(cfg.Seed)),
		inputs: newCreatorInputs(),
		status: "Welcome to your garden! Press b to visit the shop.",
	}
	m.layout()
	return m
}

// Init starts the tick, event and day-phase timers.
func (m Model) Init() tea.Cmd {
	r := m.eco.Rules()
	return tea.Batch(
		tickCmd(r.TickInterval),
		rollCmd(r.EventInterval),
		phaseCmd(r.DayInterval),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		m.eco.Tick()
		return m, tickCmd(m.eco.Rules().TickInterval)

	case RollMsg:
		m.eco.Roll()
		return m, rollCmd(m.eco.Rules().EventInterval)

	case PhaseMsg:
		m.phase = m.phase.Next()
		return m, phaseCmd(m.eco.Rules().DayInterval)
	}

	return m, nil
}

// layout sizes the field and the tables for the current terminal.
func (m *Model) layout() {
	m.help.Width = m.config.ScreenW

	bodyH := max(m.config.ScreenH-chromeLines, minFieldHeight)
	fieldW := m.config.ScreenW
	if fieldW-sidePanelWidth >= minFieldWidth {
		fieldW -= sidePanelWidth
	}
	m.screen.Resize(max(fieldW, minFieldWidth), bodyH)

	m.shop = newShopTable(bodyH - 4)
	m.almanac = newAlmanacTable(bodyH - 4)
	m.refreshShop()
	m.refreshAlmanac()
}

func (m *Model) refreshShop() {
	entries, err := m.eco.Shop(m.eco.ActivePlot())
	if err != nil {
		m.fail(err)
		return
	}
	cursor := m.shop.Cursor()
	m.shopEntries = entries
	m.shop.SetRows(shopRows(entries))
	m.shop.SetCursor(core.Clamp(cursor, 0, max(len(entries)-1, 0)))
}

func (m *Model) refreshAlmanac() {
	m.almanac.SetRows(almanacRows(m.eco.Almanac()))
}

// handleKey routes keyboard input to the open panel.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isForceQuit(msg) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeShop:
		return m.handleShopKey(msg)
	case modeAlmanac:
		return m.handleAlmanacKey(msg)
	case modeCreator:
		return m.handleCreatorKey(msg)
	case modeTyping:
		return m.handleTypingKey(msg)
	}
	return m.handleFieldKey(msg)
}

func (m Model) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionPrev:
		m.moveCursor(-1)
	case core.ActionNext:
		m.moveCursor(1)
	case core.ActionBack:
		m.marked = ""
	case core.ActionShop:
		m.mode = modeShop
		m.refreshShop()
	case core.ActionAlmanac:
		m.mode = modeAlmanac
		m.refreshAlmanac()
	case core.ActionCreator:
		if !m.eco.Unlocks().Creator {
			m.fail(fmt.Errorf("%w: creator", garden.ErrLockedByPrerequisite))
			break
		}
		m.mode = modeCreator
	case core.ActionTyping:
		m.mode = modeTyping
		m.say("Type the word! Esc or Tab to go back.")
	case core.ActionWater:
		m.water()
	case core.ActionSell:
		m.sell()
	case core.ActionFuse:
		m.fuse()
	case core.ActionClearPest:
		m.clearPest()
	case core.ActionCollect:
		m.collect()
	case core.ActionPrevPlot:
		m.switchPlot(-1)
	case core.ActionNextPlot:
		m.switchPlot(1)
	case core.ActionUnlockPlot:
		m.unlockPlot()
	}
	return m, nil
}

func (m Model) handleShopKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack, core.ActionShop:
		m.mode = modeField
		return m, nil
	case core.ActionConfirm:
		m.buy()
		return m, nil
	}
	m.shop, cmd = m.shop.Update(msg)
	return m, cmd
}

func (m Model) handleAlmanacKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack, core.ActionAlmanac:
		m.mode = modeField
		return m, nil
	}
	m.almanac, cmd = m.almanac.Update(msg)
	return m, cmd
}

func (m Model) handleCreatorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeField
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.focusInput(m.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.focusInput(m.focus - 1)
	case tea.KeyEnter:
		if m.focus < fieldCount-1 {
			return m, m.focusInput(m.focus + 1)
		}
		m.create()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = core.Wrap(i, fieldCount)
	return m.inputs[m.focus].Focus()
}

func (m Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		m.mode = modeField
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
	default:
		return m, nil
	}

	for _, r := range msg.Runes {
		word, done := m.typist.Key(r)
		if !done {
			continue
		}
		reward, lucky := m.eco.CompleteWord(word)
		if lucky {
			m.say(fmt.Sprintf("Lucky gnome! %q earned %s suns.", word, fmtSuns(reward)))
		} else {
			m.say(fmt.Sprintf("%q earned %s suns.", word, fmtSuns(reward)))
		}
	}
	return m, nil
}

// plotItems returns the items of the active plot.
func (m Model) plotItems() []garden.OwnedItem {
	p, _ := m.eco.Plot(m.eco.ActivePlot())
	return p.Items
}

// selected returns the item under the cursor.
func (m Model) selected() (garden.OwnedItem, bool) {
	items := m.plotItems()
	if len(items) == 0 {
		return garden.OwnedItem{}, false
	}
	return items[core.Clamp(m.cursor, 0, len(items)-1)], true
}

func (m *Model) moveCursor(delta int) {
	n := len(m.plotItems())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = core.Wrap(core.Clamp(m.cursor, 0, n-1)+delta, n)
}

func (m *Model) buy() {
	i := m.shop.Cursor()
	if i < 0 || i >= len(m.shopEntries) {
		return
	}
	it := m.shopEntries[i].Item
	if _, err := m.eco.Purchase(it.ID, m.eco.ActivePlot()); err != nil {
		m.fail(err)
		return
	}
	m.say(fmt.Sprintf("Bought %s %s!", it.Glyph, it.Name))
	m.refreshShop()
}

func (m *Model) water() {
	it, ok := m.selected()
	if !ok {
		m.say("Nothing to water here yet.")
		return
	}
	advanced, err := m.eco.Water(it.InstanceID)
	switch {
	case err != nil:
		m.fail(err)
	case advanced:
		now, _ := m.eco.Item(it.InstanceID)
		m.say(fmt.Sprintf("%s is now a %s.", it.Name, now.Stage))
	case it.Mature():
		m.say(it.Name + " is already grown.")
	default:
		m.say("Out of water! Buy a bottle in the shop.")
	}
}

func (m *Model) sell() {
	it, ok := m.selected()
	if !ok {
		m.say("Nothing to sell here.")
		return
	}
	refund, err := m.eco.Sell(it.InstanceID)
	if err != nil {
		m.fail(err)
		return
	}
	if m.marked == it.InstanceID {
		m.marked = ""
	}
	m.moveCursor(0)
	m.say(fmt.Sprintf("Sold %s for %s suns.", it.Name, fmtSuns(float64(refund))))
}

// fuse marks the first candidate, then fuses it with the next selection.
func (m *Model) fuse() {
	it, ok := m.selected()
	if !ok {
		return
	}
	switch m.marked {
	case "":
		m.marked = it.InstanceID
		m.say(fmt.Sprintf("%s marked. Pick a twin and press f again.", it.Name))
		return
	case it.InstanceID:
		m.marked = ""
		m.say("Fusion cancelled.")
		return
	}

	first := m.marked
	m.marked = ""
	id, err := m.eco.Fuse(first, it.InstanceID)
	if err != nil {
		m.fail(err)
		return
	}
	result, _ := m.eco.Item(id)
	m.moveCursor(0)
	m.say(fmt.Sprintf("Fusion! A %s seed appeared.", result.Name))
}

func (m *Model) clearPest() {
	it, ok := m.selected()
	if !ok || !m.eco.Afflicted(it.InstanceID) {
		m.say("No pests on that one.")
		return
	}
	if err := m.eco.ClearPest(it.InstanceID); err != nil {
		m.fail(err)
		return
	}
	m.say("Shoo! " + it.Name + " is healthy again.")
}

func (m *Model) collect() {
	bonuses := m.eco.Bonuses()
	if len(bonuses) == 0 {
		m.say("No bonus to grab right now.")
		return
	}
	reward, err := m.eco.CollectBonus(bonuses[0].ID)
	if err != nil {
		m.fail(err)
		return
	}
	m.say(fmt.Sprintf("Bonus! +%s suns.", fmtSuns(reward)))
}

func (m *Model) switchPlot(delta int) {
	ids := m.eco.PlotIDs()
	i := slices.Index(ids, m.eco.ActivePlot())
	next := ids[core.Wrap(i+delta, len(ids))]
	if err := m.eco.SetActivePlot(next); err != nil {
		m.fail(err)
		return
	}
	m.cursor = 0
	m.say(fmt.Sprintf("Plot %d", next))
}

func (m *Model) unlockPlot() {
	id, err := m.eco.UnlockPlot()
	if err != nil {
		m.fail(err)
		return
	}
	if err := m.eco.SetActivePlot(id); err != nil {
		m.fail(err)
		return
	}
	m.cursor = 0
	m.say(fmt.Sprintf("Plot %d unlocked!", id))
}

func (m *Model) create() {
	req, err := creatorRequest(m.inputs)
	if err != nil {
		m.fail(err)
		return
	}
	created, err := m.eco.CreateCustomCatalogItem(req)
	if err != nil {
		m.fail(err)
		return
	}
	m.inputs = newCreatorInputs()
	m.focus = fieldName
	m.mode = modeField
	m.say(fmt.Sprintf("Created %s %s! Find it in the shop for free.", created.Glyph, created.Name))
}

func (m *Model) say(text string) {
	m.status = text
	m.statusErr = false
}

// fail shows err in words a young player understands.
func (m *Model) fail(err error) {
	m.statusErr = true
	switch {
	case errors.Is(err, garden.ErrInsufficientFunds):
		m.status = "Not enough suns yet. Keep growing!"
	case errors.Is(err, garden.ErrLockedByPrerequisite):
		m.status = "Locked! You need an upgrade or a pool first."
	case errors.Is(err, garden.ErrInvalidFusion):
		m.status = "Fusion needs two grown twins and the BioEngineer upgrade."
	case errors.Is(err, garden.ErrNoUpgradePath):
		m.status = "That plant cannot evolve any further."
	case errors.Is(err, garden.ErrPlotLimitReached):
		m.status = "Every plot is already yours."
	case errors.Is(err, garden.ErrValidation):
		m.status = "Check your creation: " + err.Error()
	case errors.Is(err, garden.ErrNotFound):
		m.status = "That is not here anymore."
	default:
		m.status = err.Error()
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case modeShop:
		body = m.viewShop()
	case modeAlmanac:
		body = m.viewAlmanac()
	case modeCreator:
		body = m.viewCreator()
	case modeTyping:
		body = m.viewTyping()
	default:
		body = m.viewField()
	}

	status := m.theme.HUDStatus.Render(m.status)
	if m.statusErr {
		status = m.theme.HUDError.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		status,
		m.theme.Help.Render(m.help.View(m.keys)),
	)
}

func (m Model) viewHeader() string {
	t := m.theme
	parts := []string{
		t.HUDTitle.Render("Word Garden"),
		t.HUDSuns.Render("☀ " + fmtSuns(m.eco.Suns())),
		t.HUDWater.Render(fmt.Sprintf("💧 %d", m.eco.WaterLeft())),
		t.HUDLabel.Render(fmt.Sprintf("plot %d/%d", m.eco.ActivePlot(), len(m.eco.PlotIDs()))),
		t.HUDValue.Render(fmt.Sprintf("+%s/s", fmtRate(m.eco.Production()))),
	}
	if mult := m.eco.Multiplier(); mult != 100 {
		parts = append(parts, t.HUDLabel.Render(fmt.Sprintf("x%d%%", mult)))
	}

	u := m.eco.Unlocks()
	for _, b := range []struct {
		on   bool
		name string
	}{
		{u.VIP, "VIP"},
		{u.Creator, "Creator"},
		{u.BioEngineer, "Bio"},
		{u.Interdimensional, "Portal"},
	} {
		if b.on {
			parts = append(parts, t.HUDBadge.Render(b.name))
		}
	}

	parts = append(parts, t.HUDLabel.Render(m.phase.String()))
	if m.config.Player != "" {
		parts = append(parts, t.HUDLabel.Render("@"+m.config.Player))
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewField() string {
	items := m.plotItems()
	view := fieldView{
		Items:     items,
		Marked:    m.marked,
		Afflicted: m.eco.Afflicted,
		Bonuses:   m.eco.Bonuses(),
		Phase:     m.phase,
	}
	sel, hasSel := m.selected()
	if hasSel {
		view.Selected = sel.InstanceID
	}

	m.screen.Clear()
	drawField(m.screen, m.screen.Bounds(), view)
	field := RenderScreen(m.screen, m.theme)

	if m.config.ScreenW-sidePanelWidth < minFieldWidth {
		return field
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, field, m.viewSelection(sel, hasSel, len(items)))
}

func (m Model) viewSelection(it garden.OwnedItem, ok bool, count int) string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.PanelTitle.Render(fmt.Sprintf("Plot %d", m.eco.ActivePlot())))
	b.WriteString(t.HUDLabel.Render(fmt.Sprintf("  %d items\n\n", count)))

	if !ok {
		b.WriteString(t.Muted.Render("Empty soil.\nPress b to plant something."))
	} else {
		fmt.Fprintf(&b, "%s %s\n", it.Glyph, t.HUDValue.Render(it.Name))
		fmt.Fprintf(&b, "%s %s\n", t.HUDLabel.Render("stage"), it.Stage)
		if it.Rate > 0 {
			fmt.Fprintf(&b, "%s %s/s\n", t.HUDLabel.Render("makes"), fmtRate(it.Rate))
		}
		fmt.Fprintf(&b, "%s %s\n", t.HUDLabel.Render("sells"), fmtSuns(float64(m.eco.SellValue(it))))
		if m.eco.Afflicted(it.InstanceID) {
			b.WriteString(t.HUDError.Render("pests! press x") + "\n")
		}
		if m.marked == it.InstanceID {
			b.WriteString(t.HUDSuns.Render("marked for fusion") + "\n")
		}
	}

	if n := len(m.eco.Bonuses()); n > 0 {
		b.WriteString("\n" + t.HUDSuns.Render(fmt.Sprintf("$ bonus x%d, press g", n)))
	}

	return t.Panel.Width(sidePanelWidth - 2).Height(m.screen.Height() - 2).Render(b.String())
}

func (m Model) viewShop() string {
	title := m.theme.PanelTitle.Render(fmt.Sprintf("Shop for plot %d", m.eco.ActivePlot()))
	hint := m.theme.Muted.Render("enter buy · esc back")
	return m.theme.Panel.Render(title + "\n" + m.shop.View() + "\n" + hint)
}

func (m Model) viewAlmanac() string {
	a := m.eco.Almanac()
	title := m.theme.PanelTitle.Render(fmt.Sprintf("Almanac %d/%d discovered", a.Discovered, a.Total))
	return m.theme.Panel.Render(title + "\n" + m.almanac.View())
}

func (m Model) viewCreator() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Design a plant") + "\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n" + m.theme.Muted.Render("tab next field · enter create · esc back"))
	return m.theme.Panel.Render(b.String())
}

func (m Model) viewTyping() string {
	typed := m.typist.Typed()
	rest := strings.TrimPrefix(m.typist.Word(), typed)
	word := m.theme.Typed.Render(typed) + m.theme.Untyped.Render(rest)

	reward := len([]rune(m.typist.Word())) * m.eco.Rules().WordReward
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Typing practice") + "\n\n")
	b.WriteString("  " + word + "\n\n")
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("worth %d suns · esc back", reward)))
	return m.theme.Panel.Render(b.String())
}

// IsQuitting returns true if the player asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts a Bubble Tea program for eco in the alternate screen.
func Run(eco *garden.Economy, opts Options) error {
	p := tea.NewProgram(
		NewModel(eco, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
