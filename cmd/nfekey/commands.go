package main

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fiscalbr/nfecore"
)

const defaultStateFile = ".nfekey-contingency.json"

// keyView is the printed form of a parsed key.
type keyView struct {
	Key          string `yaml:"key"`
	State        string `yaml:"state"`
	StateCode    string `yaml:"state_code"`
	YearMonth    string `yaml:"year_month"`
	IssuerID     string `yaml:"issuer_id"`
	Model        string `yaml:"model"`
	Series       string `yaml:"series"`
	Number       string `yaml:"number"`
	EmissionType string `yaml:"tp_emis"`
	NumericCode  string `yaml:"numeric_code"`
	CheckDigit   string `yaml:"check_digit"`
}

func keyCommand(args []string) error {
	if len(args) < 1 {
		return errors.New("expected build, parse or validate")
	}

	switch args[0] {
	case "build":
		return keyBuild(args[1:], os.Stdout)
	case "parse":
		return keyParse(args[1:], os.Stdout)
	case "validate":
		fs := flag.NewFlagSet("key validate", flag.ExitOnError)
		fs.Parse(args[1:])
		failed := 0
		for _, key := range fs.Args() {
			if nfecore.ValidateAccessKey(key) {
				fmt.Printf("✓ %s\n", key)
			} else {
				fmt.Printf("✗ %s\n", key)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d invalid key(s)", failed)
		}
		return nil
	default:
		return fmt.Errorf("unknown key subcommand %q", args[0])
	}
}

func keyBuild(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("key build", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	envFile := fs.String("env", ".env", "Environment file loaded when no config file is found")
	stateFile := fs.String("state-file", defaultStateFile, "Contingency snapshot file")
	yearMonth := fs.String("ym", "", "Emission year and month (AAMM)")
	issuer := fs.String("issuer", "", "Issuer CNPJ, defaults to the configured issuer")
	model := fs.String("model", "55", "Document model (55 NF-e, 65 NFC-e)")
	series := fs.String("series", "", "Series, 3 digits")
	number := fs.String("number", "", "Document number, 9 digits")
	code := fs.String("code", "", "Numeric code (cNF), 8 digits")
	fs.Parse(args)

	cfg, err := resolveConfig(*configPath, *envFile)
	if err != nil {
		return err
	}
	stateCode, err := cfg.StateCodeDigits()
	if err != nil {
		return err
	}
	issuerID := nfecore.OnlyDigits(*issuer)
	if issuerID == "" {
		issuerID = nfecore.OnlyDigits(cfg.IssuerID)
	}

	cont, err := loadContingency(cfg, *stateFile, false)
	if err != nil {
		return err
	}

	key, err := nfecore.BuildAccessKey(stateCode, *yearMonth, issuerID, *model, *series, *number, cont.EmissionType(), *code)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, key)
	return nil
}

func keyParse(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("key parse", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("expected exactly one access key")
	}

	k, err := nfecore.ParseAccessKey(fs.Arg(0))
	if err != nil {
		return err
	}
	state, _ := nfecore.StateAcronym(k.StateCode)

	return yaml.NewEncoder(out).Encode(keyView{
		Key:          k.String(),
		State:        state,
		StateCode:    k.StateCode,
		YearMonth:    k.YearMonth,
		IssuerID:     nfecore.FormatCNPJ(k.IssuerID),
		Model:        k.Model,
		Series:       k.Series,
		Number:       k.Number,
		EmissionType: k.EmissionType,
		NumericCode:  k.NumericCode,
		CheckDigit:   k.CheckDigit,
	})
}

func taxIDCommand(args []string) error {
	fs := flag.NewFlagSet("taxid", flag.ExitOnError)
	fs.Parse(args)

	invalid := 0
	for _, raw := range fs.Args() {
		id := nfecore.ParseTaxpayerID(raw)
		mark := "✓"
		if !id.Valid() {
			mark = "✗"
			invalid++
		}
		fmt.Printf("%s %-4s %s\n", mark, id.Kind, id)
	}
	if invalid > 0 {
		return fmt.Errorf("%d invalid identifier(s)", invalid)
	}
	return nil
}

func contingencyCommand(args []string) error {
	if len(args) < 1 {
		return errors.New("expected activate, deactivate, status or adjust")
	}

	fs := flag.NewFlagSet("contingency "+args[0], flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	envFile := fs.String("env", ".env", "Environment file loaded when no config file is found")
	stateFile := fs.String("state-file", defaultStateFile, "Contingency snapshot file")
	motive := fs.String("motive", "", "Contingency motive (15-255 characters), defaults to the configured motive")
	mode := fs.String("mode", "", "Contingency mode: empty (automatic), A or B")
	verbose := fs.Bool("v", false, "Verbose output")
	fs.Parse(args[1:])

	cfg, err := resolveConfig(*configPath, *envFile)
	if err != nil {
		return err
	}
	cont, err := loadContingency(cfg, *stateFile, *verbose)
	if err != nil {
		return err
	}

	switch args[0] {
	case "activate":
		m := *motive
		if m == "" {
			m = cfg.Contingency.DefaultMotive
		}
		snapshot, err := cont.Activate(cfg.StateCode, m, *mode)
		if err != nil {
			return err
		}
		fmt.Println(snapshot)
		return os.WriteFile(*stateFile, []byte(snapshot), 0644)
	case "deactivate":
		snapshot := cont.Deactivate()
		fmt.Println(snapshot)
		return os.WriteFile(*stateFile, []byte(snapshot), 0644)
	case "status":
		fmt.Println(cont.Snapshot())
		return nil
	case "adjust":
		if fs.NArg() != 1 {
			return errors.New("expected the path of one XML document")
		}
		doc, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			return err
		}
		adjusted, err := cont.AdjustXML(doc)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(adjusted)
		return err
	default:
		return fmt.Errorf("unknown contingency subcommand %q", args[0])
	}
}

// loadContingency restores the contingency saved in stateFile, if any.
func loadContingency(cfg nfecore.Config, stateFile string, verbose bool) (*nfecore.Contingency, error) {
	cont, err := cfg.NewContingency(nfecore.WithTransitionHook(nfecore.NewLoggingTransitionHook(newLogger(verbose))))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(stateFile)
	if errors.Is(err, os.ErrNotExist) {
		return cont, nil
	}
	if err != nil {
		return nil, err
	}
	if err := cont.Load(string(data)); err != nil {
		return nil, fmt.Errorf("%s: %w", stateFile, err)
	}
	return cont, nil
}

func certificateCommand(args []string) error {
	fs := flag.NewFlagSet("certificate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	envFile := fs.String("env", ".env", "Environment file loaded when no config file is found")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("expected the path of one PEM certificate")
	}

	cfg, err := resolveConfig(*configPath, *envFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return errors.New("no PEM block found")
	}
	parsed, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return err
	}

	lifecycle := nfecore.NewCertificateLifecycle(nfecore.NewX509Certificate(parsed))
	summary, err := lifecycle.Summarize()
	if err != nil {
		return err
	}
	days, _ := lifecycle.DaysRemaining()

	fmt.Printf("Issuer:     %s\n", nfecore.FormatCNPJ(summary.IssuerID))
	fmt.Printf("Company:    %s\n", summary.CompanyName)
	fmt.Printf("Valid from: %s\n", summary.ValidFrom.Format("2006-01-02 15:04:05"))
	fmt.Printf("Valid to:   %s\n", summary.ValidTo.Format("2006-01-02 15:04:05"))
	fmt.Printf("Days left:  %d\n", days)

	if !lifecycle.IsValid() {
		return errors.New("certificate is expired")
	}
	if lifecycle.IsNearExpiration(cfg.Certificate.ExpiryWarningDays) {
		fmt.Fprintf(os.Stderr, "warning: certificate expires in %d day(s)\n", days)
	}
	return nil
}

func initCommand(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite existing configuration file")
	state := fs.String("state", "SP", "State acronym of the issuer")
	fs.Parse(args)

	if !*force {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			return fmt.Errorf("configuration file %s already exists, use -force to overwrite", defaultConfigFile)
		}
	}

	fmt.Printf("Creating configuration file at %s...\n", defaultConfigFile)
	return SaveConfig(DefaultConfig(*state), defaultConfigFile)
}

func versionCommand() {
	fmt.Println("nfekey", nfecore.VersionInfo())
	fmt.Println("Access key, taxpayer id and contingency tool for NF-e/NFC-e")
}
