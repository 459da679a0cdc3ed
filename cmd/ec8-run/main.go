// Command ec8-run loads a .c8 program and executes it against an SDL2
// window, keyboard, and beeper.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/emmachip8/ec8/audio"
	"github.com/emmachip8/ec8/config"
	"github.com/emmachip8/ec8/display"
	"github.com/emmachip8/ec8/input"
	"github.com/emmachip8/ec8/internal/vm"
	"github.com/spf13/cobra"
	"github.com/veandco/go-sdl2/sdl"
)

// TimerFrequency is the fixed 60 Hz rate at which the delay and sound
// timers decrement, independent of --speed.
const TimerFrequency = 60

func main() {
	var configPath string
	var scale int
	var speed int
	var layoutName string

	rootCmd := &cobra.Command{
		Use:   "ec8-run <program.c8>",
		Short: "Run an EmmaChip-8 program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultRun()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("loading config %s: %w", configPath, err)
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("scale") {
				cfg.Scale = scale
			}
			if cmd.Flags().Changed("speed") {
				cfg.Speed = speed
			}
			if cmd.Flags().Changed("layout") {
				cfg.Layout = layoutName
			}
			return run(args[0], cfg)
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "TOML run config path")
	rootCmd.Flags().IntVar(&scale, "scale", 0, "display scale factor")
	rootCmd.Flags().IntVar(&speed, "speed", 0, "emulation speed (instructions per second)")
	rootCmd.Flags().StringVar(&layoutName, "layout", "", "keyboard layout: direct or lefthand")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(romPath string, cfg config.Run) error {
	romData, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	machine := vm.New()
	if err := machine.LoadProgram(romData); err != nil {
		return fmt.Errorf("loading program into memory: %w", err)
	}

	disp, err := display.New("EmmaChip8", int32(cfg.Scale))
	if err != nil {
		return fmt.Errorf("initializing display: %w", err)
	}
	defer disp.Close()

	beeper, err := audio.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not initialize audio: %v\n", err)
	} else {
		defer beeper.Close()
	}

	keyboard := input.New(input.LayoutFromName(cfg.Layout))

	cycleInterval := time.Second / time.Duration(cfg.Speed)
	timerInterval := time.Second / TimerFrequency

	running := true
	paused := false
	lastCycleTime := time.Now()
	lastTimerTime := time.Now()

	fmt.Printf("Running %s at %d Hz (%s layout)\n", romPath, cfg.Speed, cfg.Layout)
	fmt.Println("Press ESC to quit, P to pause/resume, R to reset")

	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN {
					switch e.Keysym.Sym {
					case sdl.K_ESCAPE:
						running = false
					case sdl.K_p:
						paused = !paused
						if paused {
							disp.SetTitle("EmmaChip8 (PAUSED)")
						} else {
							disp.SetTitle("EmmaChip8")
						}
					case sdl.K_r:
						if err := machine.LoadProgram(romData); err != nil {
							fmt.Fprintf(os.Stderr, "error reloading program: %v\n", err)
						}
						keyboard.Reset()
					default:
						if key, ok := keyboard.HandleKeyDown(e.Keysym.Sym); ok {
							machine.OnKeyPressed(key)
						}
					}
				} else if e.Type == sdl.KEYUP {
					if key, ok := keyboard.HandleKeyUp(e.Keysym.Sym); ok {
						machine.OnKeyReleased(key)
					}
				}
			}
		}

		if paused {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		now := time.Now()

		if now.Sub(lastCycleTime) >= cycleInterval {
			machine.Run()
			if machine.State != vm.Running && machine.State != vm.WaitingForKey {
				fmt.Fprintf(os.Stderr, "emulation stopped: %v\n", machine.State)
				running = false
			}
			lastCycleTime = now
		}

		if now.Sub(lastTimerTime) >= timerInterval {
			machine.TickTimers()
			if beeper != nil {
				beeper.Update(machine.Sound)
			}
			lastTimerTime = now
		}

		if machine.Dirty {
			disp.Render(&machine.Output)
			machine.Dirty = false
		}

		time.Sleep(time.Microsecond * 100)
	}

	fmt.Println("Emulator stopped.")
	return nil
}
