package backdrop

import "strings"

// ThemePalette holds the two material colors derived from the theme flag,
// plus the page background hosts clear to behind the scene.
type ThemePalette struct {
	Particles  Color
	Wave       Color
	Background Color
}

// Stock palettes.
var (
	LightPalette = ThemePalette{
		Particles:  ColorFromHex(0x535353),
		Wave:       ColorFromHex(0x7c7c7c),
		Background: ColorFromHex(0xffffff),
	}
	DarkPalette = ThemePalette{
		Particles:  ColorFromHex(0xa5a5a5),
		Wave:       ColorFromHex(0x292929),
		Background: ColorFromHex(0x0a0a0a),
	}
)

// ThemeSignal is an observable dark-mode flag.
type ThemeSignal interface {
	// IsDark reports the current flag.
	IsDark() bool
	// Subscribe registers fn to be called after every change of the flag's
	// source attribute. The returned func cancels the subscription.
	Subscribe(fn func(dark bool)) (cancel func())
}

// DefaultThemeAttribute and DefaultDarkToken describe the stock theme
// convention: the "class" attribute of the root element contains "dark".
const (
	DefaultThemeAttribute = "class"
	DefaultDarkToken      = "dark"
)

type attrWatcher struct {
	id uint32
	fn func(dark bool)
}

// AttributeSignal is a ThemeSignal backed by a set of element attributes. Only
// writes to the watched attribute that change its value notify subscribers.
type AttributeSignal struct {
	attrs     map[string]string
	attribute string
	token     string
	watchers  []attrWatcher
	nextID    uint32
}

// NewAttributeSignal creates a signal watching the "class" attribute for the
// "dark" token, seeded with the given class list.
func NewAttributeSignal(class string) *AttributeSignal {
	return NewAttributeSignalFor(DefaultThemeAttribute, DefaultDarkToken, class)
}

// NewAttributeSignalFor creates a signal watching attribute for token.
func NewAttributeSignalFor(attribute, token, value string) *AttributeSignal {
	return &AttributeSignal{
		attrs:     map[string]string{attribute: value},
		attribute: attribute,
		token:     token,
	}
}

// Attribute returns the current value of name.
func (a *AttributeSignal) Attribute(name string) string {
	return a.attrs[name]
}

// SetAttribute writes an attribute. Subscribers are notified only when name
// is the watched attribute and its value changed.
func (a *AttributeSignal) SetAttribute(name, value string) {
	prev, had := a.attrs[name]
	a.attrs[name] = value
	if name != a.attribute || (had && prev == value) {
		return
	}
	dark := a.IsDark()
	// Snapshot so callbacks may cancel themselves.
	ws := append([]attrWatcher(nil), a.watchers...)
	for _, w := range ws {
		w.fn(dark)
	}
}

// SetDark adds or removes the dark token from the watched attribute.
func (a *AttributeSignal) SetDark(dark bool) {
	fields := strings.Fields(a.attrs[a.attribute])
	out := fields[:0]
	for _, f := range fields {
		if f != a.token {
			out = append(out, f)
		}
	}
	if dark {
		out = append(out, a.token)
	}
	a.SetAttribute(a.attribute, strings.Join(out, " "))
}

// Toggle flips the dark token.
func (a *AttributeSignal) Toggle() {
	a.SetDark(!a.IsDark())
}

// IsDark reports whether the watched attribute contains the dark token.
func (a *AttributeSignal) IsDark() bool {
	for _, f := range strings.Fields(a.attrs[a.attribute]) {
		if f == a.token {
			return true
		}
	}
	return false
}

// Subscribe registers fn for changes of the watched attribute.
func (a *AttributeSignal) Subscribe(fn func(dark bool)) func() {
	a.nextID++
	id := a.nextID
	a.watchers = append(a.watchers, attrWatcher{id: id, fn: fn})
	return func() {
		for i := range a.watchers {
			if a.watchers[i].id == id {
				copy(a.watchers[i:], a.watchers[i+1:])
				a.watchers[len(a.watchers)-1] = attrWatcher{}
				a.watchers = a.watchers[:len(a.watchers)-1]
				return
			}
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (a *AttributeSignal) Subscribers() int {
	return len(a.watchers)
}

// ThemeObserver keeps the particle and wave material colors in sync with a
// ThemeSignal.
type ThemeObserver struct {
	signal      ThemeSignal
	light, dark ThemePalette
	particles   *Material
	wave        *Material
	live        func() bool
	cancel      func()
	isDark      bool
	onChange    func(dark bool)
}

// NewThemeObserver reads the current flag once and seeds both materials.
func NewThemeObserver(signal ThemeSignal, light, dark ThemePalette, particles, wave *Material) *ThemeObserver {
	o := &ThemeObserver{
		signal:    signal,
		light:     light,
		dark:      dark,
		particles: particles,
		wave:      wave,
	}
	o.apply(signal.IsDark())
	return o
}

// Palette returns the palette for the given flag.
func (o *ThemeObserver) Palette(dark bool) ThemePalette {
	if dark {
		return o.dark
	}
	return o.light
}

// IsDark reports the flag the materials were last colored for.
func (o *ThemeObserver) IsDark() bool {
	return o.isDark
}

// Current returns the palette the materials were last colored with.
func (o *ThemeObserver) Current() ThemePalette {
	return o.Palette(o.isDark)
}

// Observe subscribes to the signal. live gates every callback; onChange, if
// non-nil, runs after the materials are recolored. A flag that changed since
// construction is applied first, without calling onChange.
func (o *ThemeObserver) Observe(live func() bool, onChange func(dark bool)) {
	if o.cancel != nil {
		return
	}
	o.live = live
	o.onChange = onChange
	o.cancel = o.signal.Subscribe(o.handle)
	if dark := o.signal.IsDark(); dark != o.isDark {
		o.apply(dark)
	}
}

func (o *ThemeObserver) handle(dark bool) {
	if o.live != nil && !o.live() {
		return
	}
	o.apply(dark)
	if o.onChange != nil {
		o.onChange(dark)
	}
}

// apply writes exactly the two palette colors into the live materials.
func (o *ThemeObserver) apply(dark bool) {
	o.isDark = dark
	p := o.Palette(dark)
	o.particles.SetColor(p.Particles)
	o.wave.SetColor(p.Wave)
}

// Disconnect cancels the subscription. Safe to call twice.
func (o *ThemeObserver) Disconnect() {
	if o.cancel == nil {
		return
	}
	o.cancel()
	o.cancel = nil
	o.onChange = nil
}
