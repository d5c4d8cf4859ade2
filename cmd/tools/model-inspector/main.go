// cmd/tools/model-inspector/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"price-predictor/internal/boxcox"
	"price-predictor/internal/encoding"
	"price-predictor/internal/inference"
	"price-predictor/internal/models"
	"price-predictor/internal/predictor"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		help(out)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "validate":
		cmd := flag.NewFlagSet("validate", flag.ContinueOnError)
		path := cmd.String("path", "linear_regression_model.json", "Path to model artifact")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		return validateArtifact(out, *path)

	case "vocab":
		printVocabulary(out, encoding.DefaultVocabulary())
		return nil

	case "encode":
		cmd := flag.NewFlagSet("encode", flag.ContinueOnError)
		payload := cmd.String("payload", "", "Order JSON to encode")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		return encodePayload(out, *payload)

	case "inverse":
		cmd := flag.NewFlagSet("inverse", flag.ContinueOnError)
		value := cmd.String("value", "", "Value on the Box-Cox scale")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		t, err := strconv.ParseFloat(*value, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", *value, err)
		}
		price, err := boxcox.Inverse(t, boxcox.FittedLambda)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%v\n", price)
		return nil

	case "help":
		help(out)
		return nil

	default:
		help(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// validateArtifact loads the artifact the same way the predictor does and
// reports how it lines up with the compiled encoder and λ.
func validateArtifact(out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}

	artifact, err := inference.ParseArtifact(data)
	if err != nil {
		return err
	}
	if _, err := artifact.Model(); err != nil {
		return err
	}

	fmt.Fprintf(out, "model_type:   %s\n", artifact.ModelType)
	fmt.Fprintf(out, "coefficients: %d\n", len(artifact.Coefficients))
	fmt.Fprintf(out, "intercept:    %v\n", artifact.Intercept)
	for i, c := range artifact.Coefficients {
		fmt.Fprintf(out, "  %-14s %v\n", models.FeatureNames[i], c)
	}
	if len(artifact.FeatureNames) == 0 {
		fmt.Fprintln(out, "feature order: not declared, assuming encoder order")
	}

	if artifact.TargetTransform == nil {
		fmt.Fprintf(out, "lambda:       not declared, predictor applies %v\n", boxcox.FittedLambda)
	} else if artifact.TargetTransform.Lambda != boxcox.FittedLambda {
		return fmt.Errorf("artifact lambda %v does not match compiled lambda %v",
			artifact.TargetTransform.Lambda, boxcox.FittedLambda)
	} else {
		fmt.Fprintf(out, "lambda:       %v\n", artifact.TargetTransform.Lambda)
	}

	fmt.Fprintln(out, "Artifact validation passed.")
	return nil
}

func printVocabulary(out io.Writer, vocab encoding.Vocabulary) {
	for _, cat := range []encoding.Category{vocab.EventType, vocab.ProductName, vocab.SeasonPeriod} {
		fmt.Fprintf(out, "%s:\n", cat.Field())
		for _, label := range cat.Labels() {
			code, _ := cat.Code(label)
			fmt.Fprintf(out, "  %-28q %d\n", label, code)
		}
	}
}

func encodePayload(out io.Writer, payload string) error {
	order, err := predictor.DecodeOrder(payload)
	if err != nil {
		return err
	}
	vec, err := encoding.NewEncoder(encoding.DefaultVocabulary()).Encode(order)
	if err != nil {
		return err
	}
	for i, v := range vec {
		fmt.Fprintf(out, "%-14s %v\n", models.FeatureNames[i], v)
	}
	return nil
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: model-inspector <command> [flags]

Commands:
  validate  Check a model artifact against the encoder and Box-Cox lambda
  vocab     Print the category codes the encoder uses
  encode    Print the feature vector for an order payload
  inverse   Apply the inverse Box-Cox transform to a model output
  help      Show this help message

Examples:
  model-inspector validate -path /opt/price-predictor/linear_regression_model.json
  model-inspector encode -payload '{"event_type":"Wedding", ...}'
  model-inspector inverse -value 11.476

Use 'model-inspector <command> -h' for more information about a command.`)
}
