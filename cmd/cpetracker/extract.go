package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/supercpe/cpe-tracker/internal/broker"
	"github.com/supercpe/cpe-tracker/internal/entity"
	"github.com/supercpe/cpe-tracker/internal/export"
	"github.com/supercpe/cpe-tracker/internal/pipeline"
	"github.com/supercpe/cpe-tracker/internal/repository"
)

var extractFlags struct {
	maxCredits    float64
	lookbackYears int
	workers       int
	orgID         string
	formVersion   string
	provider      string
	sponsor       string
	xlsxOut       string
	csvOut        string
	cachePath     string
}

var extractCmd = &cobra.Command{
	Use:   "extract [ocr-text-file...]",
	Short: "Extract verified course records from OCR'd certificate text",
	Long: `Each input file holds the OCR text of one certificate, one text segment
per line. Results are printed as JSON, one object per document; when broker
constants are supplied, CE Broker payloads are built and optionally exported
to a worksheet.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.Float64Var(&extractFlags.maxCredits, "max-credits", 50, "per-course credit maximum")
	f.IntVar(&extractFlags.lookbackYears, "lookback-years", 3, "reporting window in years")
	f.IntVar(&extractFlags.workers, "workers", 4, "parallel extraction workers")
	f.StringVar(&extractFlags.orgID, "org-id", os.Getenv("CEBROKER_ORG_ID"), "CE Broker organization ID")
	f.StringVar(&extractFlags.formVersion, "form-version", os.Getenv("CEBROKER_FORM_VERSION"), "CE Broker form version")
	f.StringVar(&extractFlags.provider, "provider", "", "fallback provider name")
	f.StringVar(&extractFlags.sponsor, "sponsor", "", "fallback NASBA sponsor ID")
	f.StringVar(&extractFlags.xlsxOut, "xlsx", "", "write broker worksheet XLSX to this path")
	f.StringVar(&extractFlags.csvOut, "csv", "", "write broker worksheet CSV to this path")
	f.StringVar(&extractFlags.cachePath, "cache", "", "sqlite dedupe cache path (skips already-seen certificates)")
	rootCmd.AddCommand(extractCmd)
}

type extractOutput struct {
	Filename string                   `json:"filename"`
	Status   string                   `json:"status"`
	Record   *entity.VerifiedRecord   `json:"record,omitempty"`
	Payload  *entity.BrokerPayload    `json:"payload,omitempty"`
	Issues   []entity.ValidationIssue `json:"issues,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := pipeline.DefaultConfig()
	cfg.Validator.MaxCredits = decimal.NewFromFloat(extractFlags.maxCredits)
	cfg.Validator.LookbackYears = extractFlags.lookbackYears
	pipe := pipeline.New(cfg, logger)

	var cache *repository.DedupeCache
	if extractFlags.cachePath != "" {
		var err error
		cache, err = repository.OpenDedupeCache(extractFlags.cachePath)
		if err != nil {
			return err
		}
		defer func() { _ = cache.Close() }()
	}

	var jobs []pipeline.Job
	hashes := map[string]string{} // document ID -> content hash
	var outputs []extractOutput

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		sha := entity.HashContent(content)
		filename := filepath.Base(path)

		if cache != nil {
			seen, err := cache.Seen(ctx, sha)
			if err != nil {
				return err
			}
			if seen {
				logger.Info("extract.skip.duplicate", "file", filename)
				outputs = append(outputs, extractOutput{Filename: filename, Status: "duplicate"})
				continue
			}
		}

		doc := entity.NewDocument(filename)
		doc.ContentSHA = sha
		hashes[doc.ID.String()] = sha
		jobs = append(jobs, pipeline.Job{Document: doc, Segments: strings.Split(string(content), "\n")})
	}

	results := pipe.RunBatch(ctx, jobs, extractFlags.workers)

	builder := broker.NewBuilder(logger)
	brokerCtx := broker.Context{
		OrganizationID: extractFlags.orgID,
		FormVersion:    extractFlags.formVersion,
		ProviderName:   extractFlags.provider,
		NASBASponsorID: extractFlags.sponsor,
	}
	buildPayloads := brokerCtx.OrganizationID != "" && brokerCtx.FormVersion != ""

	var payloads []entity.BrokerPayload
	for _, res := range results {
		out := extractOutput{Filename: res.Document.Filename}
		switch {
		case res.Record != nil:
			out.Status = "verified"
			out.Record = res.Record
			if buildPayloads {
				brokerCtx.CertificateFilename = res.Document.Filename
				payload, err := builder.Build(*res.Record, brokerCtx)
				if err != nil {
					return err
				}
				out.Payload = &payload
				payloads = append(payloads, payload)
			}
			if cache != nil {
				if err := cache.MarkSeen(ctx, hashes[res.Document.ID.String()], res.Document.Filename); err != nil {
					return err
				}
			}
		default:
			out.Status = "rejected"
			out.Issues = res.Issues
		}
		outputs = append(outputs, out)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, out := range outputs {
		if err := enc.Encode(out); err != nil {
			return err
		}
	}

	return writeWorksheets(payloads)
}

func writeWorksheets(payloads []entity.BrokerPayload) error {
	if len(payloads) == 0 || (extractFlags.xlsxOut == "" && extractFlags.csvOut == "") {
		return nil
	}
	svc := export.NewService(logger)

	if extractFlags.xlsxOut != "" {
		data, err := svc.BrokerWorksheetXLSX(payloads)
		if err != nil {
			return err
		}
		if err := os.WriteFile(extractFlags.xlsxOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", extractFlags.xlsxOut, err)
		}
	}
	if extractFlags.csvOut != "" {
		f, err := os.Create(extractFlags.csvOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", extractFlags.csvOut, err)
		}
		defer func() { _ = f.Close() }()
		if err := svc.BrokerWorksheetCSV(f, payloads); err != nil {
			return err
		}
	}
	return nil
}
