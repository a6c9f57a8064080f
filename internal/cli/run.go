package cli

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"github.com/ssebench/ssebench/internal/bench"
	"github.com/ssebench/ssebench/internal/config"
	"github.com/ssebench/ssebench/internal/output"
	"github.com/ssebench/ssebench/internal/payload"
	"github.com/ssebench/ssebench/internal/s3"
)

var runCmd = newRunCommand()

// newRunCommand builds the run command with its full flag surface. A
// factory rather than a package-level literal so tests get fresh flag
// state.
func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the paired upload/download benchmark",
		Long: `Run N iterations of paired PUT (and optionally GET) operations against a
bucket, alternating an unencrypted baseline with a server-side-encrypted
treatment, then report summary statistics and the paired overhead estimate.

Flags override values from --config. Credentials come from the standard AWS
chain (environment, shared config, instance role).`,
		SilenceUsage: true,
		RunE:         runBenchmark,
	}

	flags := cmd.Flags()
	flags.String("config", "", "YAML config file (flags take precedence)")
	flags.String("bucket", "", "target bucket name (required)")
	flags.String("region", "us-east-1", "bucket region")
	flags.String("endpoint", "", "S3-compatible endpoint URL (path-style addressing)")
	flags.Int("size", 1<<20, "payload size in bytes")
	flags.Int("iterations", 10, "number of measured iterations")
	flags.Bool("downloads", true, "also measure GET latency")
	flags.String("prefix", "ssebench", "object key prefix")
	flags.String("sse", "AES256", "server-side encryption algorithm (AES256 or aws:kms)")
	flags.Int("max-retries", 3, "retries per request after the first attempt")
	flags.Duration("base-delay", 200*time.Millisecond, "backoff base delay")
	flags.Duration("max-delay", 2*time.Second, "backoff delay cap")
	flags.Duration("pause", 500*time.Millisecond, "pause between iterations")
	flags.Bool("warmup", false, "run one unrecorded warm-up iteration")
	flags.Bool("strict-cleanup", false, "abort the run when a cleanup delete fails")
	flags.Bool("verbose", false, "per-retry and per-sample diagnostics")
	flags.Bool("json", false, "emit the report as JSON")
	flags.Bool("no-color", false, "disable colored output")

	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	log := newLogger(cfg.Verbose)

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return fmt.Errorf("loading AWS configuration: %w", err)
	}
	// Fail before any benchmark traffic if no credentials resolve.
	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return fmt.Errorf("resolving AWS credentials: %w", err)
	}

	var clientOptions []s3.ClientOption
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, s3.WithEndpoint(cfg.Endpoint))
	}
	client := s3.NewClient(cfg.Bucket, cfg.Region, awsCfg.Credentials, clientOptions...)
	defer client.Close()

	body, err := payload.Random(cfg.PayloadSize)
	if err != nil {
		return err
	}

	executor := bench.NewExecutor(client, bench.RetryPolicy{
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  time.Duration(cfg.BaseDelay),
		MaxDelay:   time.Duration(cfg.MaxDelay),
	}, log)

	runner := bench.NewRunner(executor, bench.Options{
		Iterations:    cfg.Iterations,
		Payload:       body,
		Downloads:     cfg.Downloads,
		KeyPrefix:     cfg.KeyPrefix,
		SSEAlgorithm:  cfg.SSEAlgorithm,
		Pause:         time.Duration(cfg.Pause),
		Warmup:        cfg.Warmup,
		StrictCleanup: cfg.StrictCleanup,
	}, log)

	log.Info().
		Str("bucket", cfg.Bucket).
		Int("iterations", cfg.Iterations).
		Int("payloadBytes", cfg.PayloadSize).
		Bool("downloads", cfg.Downloads).
		Str("sse", cfg.SSEAlgorithm).
		Msg("starting benchmark")

	report, err := runner.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("run aborted")
		return err
	}

	formatter := output.NewFormatter(cfg.Verbose, noColor || !output.ShouldColor())
	if jsonOutput {
		text, err := formatter.FormatJSON(report)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}
	fmt.Print(formatter.FormatReport(report))
	return nil
}

// buildConfig layers flag values over the config file (or the defaults when
// no file is given). Only flags the user actually set override the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed("bucket") || cfg.Bucket == "" {
		cfg.Bucket, _ = flags.GetString("bucket")
	}
	if flags.Changed("region") {
		cfg.Region, _ = flags.GetString("region")
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("size") {
		cfg.PayloadSize, _ = flags.GetInt("size")
	}
	if flags.Changed("iterations") {
		cfg.Iterations, _ = flags.GetInt("iterations")
	}
	if flags.Changed("downloads") {
		cfg.Downloads, _ = flags.GetBool("downloads")
	}
	if flags.Changed("prefix") {
		cfg.KeyPrefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("sse") {
		cfg.SSEAlgorithm, _ = flags.GetString("sse")
	}
	if flags.Changed("max-retries") {
		cfg.MaxRetries, _ = flags.GetInt("max-retries")
	}
	if flags.Changed("base-delay") {
		d, _ := flags.GetDuration("base-delay")
		cfg.BaseDelay = config.Duration(d)
	}
	if flags.Changed("max-delay") {
		d, _ := flags.GetDuration("max-delay")
		cfg.MaxDelay = config.Duration(d)
	}
	if flags.Changed("pause") {
		d, _ := flags.GetDuration("pause")
		cfg.Pause = config.Duration(d)
	}
	if flags.Changed("warmup") {
		cfg.Warmup, _ = flags.GetBool("warmup")
	}
	if flags.Changed("strict-cleanup") {
		cfg.StrictCleanup, _ = flags.GetBool("strict-cleanup")
	}
	cfg.Verbose, _ = flags.GetBool("verbose")

	return cfg, nil
}
