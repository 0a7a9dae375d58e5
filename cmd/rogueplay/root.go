package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rogueplay/rogueplay/environment"
	"github.com/rogueplay/rogueplay/input"
	"github.com/rogueplay/rogueplay/play"
)

var rootCmd = &cobra.Command{
	Use:   "rogueplay",
	Short: "Play episodes against an environment backend",
	Long: `Rogueplay drives episodes of a registered environment backend with
actions from a human player or a uniform random policy, printing reward
and steps-per-second statistics and optionally recording a replay GIF.`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("mode", "m", string(play.Human),
		"Control mode: human or random")
	rootCmd.Flags().StringP("env", "e", environment.RawName,
		"Environment selector; \"raw\" selects the raw backend")
	rootCmd.Flags().IntP("ngames", "n", 1,
		"Number of episodes to play before exiting")
	rootCmd.Flags().Int("max-steps", 10000,
		"Maximum number of steps per episode")
	rootCmd.Flags().String("seeds", "",
		"Backend seed: an integer or name=value pairs (default: unseeded)")
	rootCmd.Flags().String("savedir", "play_data",
		"Directory for backend-native recordings; empty disables them, "+
			"the literal \"args\" derives a timestamped name")
	rootCmd.Flags().Bool("no-render", false,
		"Disable rendering of each step")
	rootCmd.Flags().String("render-mode", string(environment.RenderHuman),
		"Render mode: human, full, or ansi")
	rootCmd.Flags().Bool("save-gif", false,
		"Record a replay GIF of the played episodes")
	rootCmd.Flags().String("gif-path", "replay.gif",
		"Where to write the replay GIF")
	rootCmd.Flags().Int("gif-duration", 300,
		"Display duration of each replay frame in milliseconds")
	rootCmd.Flags().BoolP("debug", "d", false,
		"Drop into an interactive inspection prompt if the run fails")
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	mode, _ := flags.GetString("mode")
	envName, _ := flags.GetString("env")
	episodes, _ := flags.GetInt("ngames")
	maxSteps, _ := flags.GetInt("max-steps")
	seeds, _ := flags.GetString("seeds")
	saveDir, _ := flags.GetString("savedir")
	noRender, _ := flags.GetBool("no-render")
	renderMode, _ := flags.GetString("render-mode")
	saveGIF, _ := flags.GetBool("save-gif")
	gifPath, _ := flags.GetString("gif-path")
	gifDuration, _ := flags.GetInt("gif-duration")
	debug, _ := flags.GetBool("debug")

	seed, err := environment.ParseSeed(seeds)
	if err != nil {
		return err
	}

	switch environment.RenderMode(renderMode) {
	case environment.RenderHuman, environment.RenderFull,
		environment.RenderANSI:
	default:
		return fmt.Errorf("no such render mode %q", renderMode)
	}

	if saveGIF && envName == environment.RawName {
		return fmt.Errorf("replay recording requires pixel observations, " +
			"which the raw backend does not provide; select a structured " +
			"environment to record")
	}

	if saveDir == "args" {
		saveDir = fmt.Sprintf("%s_%s_%s",
			time.Now().Format("20060102-150405"), mode, envName)
	}

	playCfg := play.Config{
		Mode:        play.Mode(mode),
		Episodes:    episodes,
		MaxSteps:    maxSteps,
		Render:      !noRender,
		Record:      saveGIF,
		GIFPath:     gifPath,
		GIFDuration: time.Duration(gifDuration) * time.Millisecond,
	}
	if err := playCfg.Validate(); err != nil {
		return err
	}

	env, err := environment.New(environment.Config{
		Name:       envName,
		SaveDir:    saveDir,
		MaxSteps:   maxSteps,
		Seed:       seed,
		RenderMode: environment.RenderMode(renderMode),
		Pixels:     saveGIF,
	})
	if err != nil {
		return err
	}

	var src input.Source
	switch playCfg.Mode {
	case play.Human:
		src = input.NewHuman(os.Stdin, os.Stdout, input.NewTTY())
	case play.Random:
		src = input.NewRandom(uint64(time.Now().UnixNano()))
	}

	controller, err := play.New(playCfg, env, src)
	if err != nil {
		env.Close()
		return err
	}

	if err := controller.Run(); err != nil {
		if debug {
			inspect(err, controller.Snapshot(), os.Stdin, os.Stdout)
		}
		return err
	}
	return nil
}
