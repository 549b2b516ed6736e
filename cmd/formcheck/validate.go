package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/csg33k/attrition-form/internal/adapters/predictor"
	"github.com/csg33k/attrition-form/internal/domain"
	"github.com/csg33k/attrition-form/internal/fields"
	"github.com/csg33k/attrition-form/internal/normalize"
)

var errInvalid = errors.New("validation failed")

var (
	submitFlag  bool
	urlFlag     string
	timeoutFlag time.Duration
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Normalize a file of field values",
	Long: `Reads a YAML or JSON mapping of field names to values and runs the
normalizer. A valid record is printed as JSON; otherwise every validation
message is printed, one per line.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&submitFlag, "submit", false, "Send a valid record to the prediction endpoint")
	validateCmd.Flags().StringVar(&urlFlag, "url", envOr("PREDICT_URL", "http://127.0.0.1:5000/predict"), "Prediction endpoint URL")
	validateCmd.Flags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "Prediction request timeout (0 waits indefinitely)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	values, err := readValues(args[0])
	if err != nil {
		return err
	}

	res := normalize.Normalize(domain.RawInput{Values: values}, fields.Employee())
	if !res.OK() {
		fmt.Fprintln(cmd.ErrOrStderr(), normalize.Messages(res.Errors))
		return errInvalid
	}

	out, err := json.MarshalIndent(res.Record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if !submitFlag {
		return nil
	}
	p, err := predictor.New(urlFlag, timeoutFlag).Predict(cmd.Context(), res.Record)
	if err != nil {
		if domain.IsTransmission(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), domain.TransmissionMessage)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), p.Outcome())
	return nil
}

// readValues loads a flat mapping. JSON input is read by the YAML decoder.
func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	values := make(map[string]string, len(doc))
	for k, v := range doc {
		s, err := scalar(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		values[k] = s
	}
	return values, nil
}

func scalar(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
