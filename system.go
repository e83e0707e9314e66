// Package dmgcore wires the individual DMG subsystems into a single
// runnable system: cartridge, interrupt controller, timer, PPU, APU,
// joypad, serial port and CPU, stepped together one T-cycle at a time.
package dmgcore

import (
	"time"

	"github.com/aeonsys/dmgcore/internal/apu"
	"github.com/aeonsys/dmgcore/internal/cartridge"
	"github.com/aeonsys/dmgcore/internal/corelog"
	"github.com/aeonsys/dmgcore/internal/cpu"
	"github.com/aeonsys/dmgcore/internal/interrupts"
	"github.com/aeonsys/dmgcore/internal/joypad"
	"github.com/aeonsys/dmgcore/internal/mmu"
	"github.com/aeonsys/dmgcore/internal/ppu"
	"github.com/aeonsys/dmgcore/internal/serial"
	"github.com/aeonsys/dmgcore/internal/timer"
	"github.com/sirupsen/logrus"
)

// ClockSpeed is the DMG's T-cycle clock rate.
const ClockSpeed = 4194304

// TicksPerFrame is the number of T-cycles that make up one 59.7 Hz frame.
const TicksPerFrame = ppu.TicksPerFrame

// System is a complete, runnable Game Boy: every subsystem wired together
// and advanced in lockstep by Step.
type System struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	APU        *apu.APU
	Timer      *timer.Timer
	Joypad     *joypad.State
	Serial     *serial.Controller
	Interrupts *interrupts.Controller
	Cart       *cartridge.Cartridge

	log *logrus.Entry
	now func() time.Time
}

// Option configures a System at construction time.
type Option func(*System)

// WithLogger injects a logrus.Logger used for all subsystem component
// logging. The default discards output.
func WithLogger(l *logrus.Logger) Option {
	return func(s *System) {
		s.log = corelog.Component(l, "system")
		s.MMU.SetLogger(l)
		s.PPU.SetLogger(l)
	}
}

// WithRelaxedAccessBlocks disables the VRAM/OAM access blocking rules
// (spec's "optional relaxation flag"), useful for test ROMs or tooling
// that pokes the PPU outside of normal timing.
func WithRelaxedAccessBlocks() Option {
	return func(s *System) { s.PPU.Relax.Relaxed = true }
}

// WithClockSource overrides the wall-clock source used to stamp and
// catch up the MBC3 RTC. Tests inject a fixed clock for determinism; the
// default is time.Now.
func WithClockSource(now func() time.Time) Option {
	return func(s *System) { s.now = now }
}

// WithBootROM supplies a boot ROM image. When present the CPU starts at
// address 0x0000 with zeroed registers instead of the post-boot state.
func WithBootROM(rom []byte) Option {
	return func(s *System) {
		s.MMU.SetBootROM(rom)
		s.CPU.PC = 0x0000
		s.CPU.SP = 0x0000
		s.CPU.A, s.CPU.F = 0x00, 0x00
		s.CPU.B, s.CPU.C = 0x00, 0x00
		s.CPU.D, s.CPU.E = 0x00, 0x00
		s.CPU.H, s.CPU.L = 0x00, 0x00
	}
}

// WithPresent registers a callback invoked with the completed framebuffer
// on every VBlank.
func WithPresent(f func(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8)) Option {
	return func(s *System) { s.PPU.Present = f }
}

// WithPeer wires a link-cable partner into the serial port. The hook
// receives the byte this system is shifting out and returns the byte
// received in exchange; an unplugged port (the default) shifts in 1 bits.
func WithPeer(peer func(out uint8) (in uint8)) Option {
	return func(s *System) { s.Serial.Peer = peer }
}

// NewSystem loads rom, validates its header, constructs every subsystem
// in dependency order, and applies opts. It returns ErrBadROMSize or
// ErrHeaderChecksum (see package cartridge) for a malformed image.
func NewSystem(rom []byte, opts ...Option) (*System, error) {
	cart, err := cartridge.Load(rom)
	if err != nil {
		return nil, err
	}

	ic := interrupts.New()
	t := timer.New()
	jp := joypad.New()
	sc := serial.New()
	snd := apu.New()
	video := ppu.New()
	bus := mmu.New(cart, video, snd, t, jp, sc, ic, nil, nil)
	c := cpu.New(bus, ic)
	c.ResetDIV = t.WriteDIV

	s := &System{
		CPU: c, MMU: bus, PPU: video, APU: snd, Timer: t,
		Joypad: jp, Serial: sc, Interrupts: ic, Cart: cart,
		log: corelog.Component(corelog.New(), "system"),
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	cart.SyncClock(s.now().Unix())
	return s, nil
}

// Step advances the system by exactly one T-cycle, in the dependency
// order spec §5 requires: the cartridge's own clock (MBC3's RTC) first,
// then timer, then PPU (which also advances any in-flight OAM DMA copy),
// then serial, then APU sub-counters, with the CPU consuming the cycle
// last.
func (s *System) Step() {
	s.Cart.Clock()
	s.Timer.Step(s.Interrupts)
	s.PPU.Step(s.Interrupts)
	s.Serial.Step(s.Interrupts)
	s.APU.Step()
	s.CPU.Step()
}

// RunFrame steps the system for exactly one 70,224 T-cycle frame.
func (s *System) RunFrame() {
	for i := 0; i < TicksPerFrame; i++ {
		s.Step()
	}
}

// SetButton reports a joypad button's pressed state to the system.
func (s *System) SetButton(b joypad.Button, pressed bool) {
	s.Joypad.SetButton(b, pressed, s.Interrupts)
}

// GenerateSample renders one APU output sample for simulated time t
// (seconds); see apu.APU.GenerateSample.
func (s *System) GenerateSample(t float64) float64 {
	return s.APU.GenerateSample(t)
}

// HasBattery reports whether the loaded cartridge persists RAM.
func (s *System) HasBattery() bool { return s.Cart.HasBattery() }

// SaveBattery returns the battery-backed save image (spec §6), stamping
// the MBC3 RTC footer's wall-clock reference with the configured clock
// source before encoding it.
func (s *System) SaveBattery() []byte {
	s.Cart.SyncClock(s.now().Unix())
	return s.Cart.SaveRAM()
}

// LoadBattery restores cartridge RAM (and RTC state, if present) from a
// previously saved battery image, then catches the RTC up to the current
// time using the configured clock source.
func (s *System) LoadBattery(data []byte) {
	s.Cart.LoadRAM(data)
	s.Cart.SyncClock(s.now().Unix())
}
