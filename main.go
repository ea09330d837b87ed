package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Pratyasha-Tapaja/cbpmodel/internal/config"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/intensity"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/model"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/prediction"
)

const version = "cbpmodel v0.1.0"

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := runCLI(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func runCLI(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		printUsage(stdout)
		return nil
	}

	switch args[0] {
	case "help", "--help", "-h":
		printUsage(stdout)
	case "version", "--version", "-v":
		fmt.Fprintln(stdout, version)
	case "tiers":
		printTiers(stdout)
	case "intensity":
		return runIntensity(args[1:], stdout)
	case "predict":
		return runPredict(args[1:], stdin, stdout)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cbpmodel <command> [arguments]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  intensity HEART_RATE DURATION WEIGHT   Compute the workout intensity index")
	fmt.Fprintln(w, "  tiers                                  List the intensity tiers")
	fmt.Fprintln(w, "  predict FILE                           Predict calories for a JSON request (- for stdin)")
	fmt.Fprintln(w, "  version                                Show version")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MODEL_PATH          Model artifact (default model/calorie_model.json)")
	fmt.Fprintln(w, "  MODEL_TYPE          lightgbm, tree_ensemble or linear (default tree_ensemble)")
}

func printTiers(w io.Writer) {
	for _, t := range intensity.Tiers() {
		upper := fmt.Sprintf("%.0f", t.Max)
		if t.Level == intensity.VeryHigh {
			upper += "+"
		}
		fmt.Fprintf(w, "%-10s [%.0f, %s)  %s\n", t.Level, t.Min, upper, t.Description)
		for _, ex := range t.Examples {
			fmt.Fprintf(w, "             - %s\n", ex)
		}
	}
}

func runIntensity(args []string, w io.Writer) error {
	if len(args) != 3 {
		return fmt.Errorf("intensity expects HEART_RATE DURATION WEIGHT, got %d arguments", len(args))
	}

	names := []string{"heart rate", "duration", "weight"}
	vals := make([]float64, 3)
	for i, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %v", names[i], a, err)
		}
		vals[i] = v
	}

	res, err := intensity.Evaluate(vals[0], vals[1], vals[2])
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Raw intensity index:    %.4f\n", res.RawIndex)
	fmt.Fprintf(w, "Scaled intensity index: %.4f\n", res.ScaledIndex)
	fmt.Fprintf(w, "Intensity level:        %s\n", res.Tier.Level)
	fmt.Fprintf(w, "%s\n", res.Tier.Description)
	return nil
}

func runPredict(args []string, stdin io.Reader, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("predict expects a single FILE argument")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	m, err := model.Load(cfg.Model.Type, cfg.Model.Path)
	if err != nil {
		return err
	}

	in := stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open request: %w", err)
		}
		defer f.Close() //nolint:errcheck
		in = f
	}

	req, err := prediction.DecodeRequest(in)
	if err != nil {
		return err
	}
	res, err := prediction.NewService(m).Predict(context.Background(), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(prediction.NewResponse(res))
}
