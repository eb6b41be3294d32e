package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Soborbo/bristolhouseclearances/client"
	"github.com/Soborbo/bristolhouseclearances/distance"
	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/service"
	"github.com/Soborbo/bristolhouseclearances/wizard"
)

// postcodes.io verification plugs into the resolver
var _ distance.PostcodeVerifier = (*service.PostcodeService)(nil)

// quoteInput holds the wizard answers given on the command line.
// Empty fields keep whatever the resumed session already holds.
type quoteInput struct {
	items   map[string]int
	access  []string
	address models.Address
	contact models.Contact
	consent bool
	token   string
}

func quoteCmd() *cobra.Command {
	var (
		serverURL   string
		sessionDir  string
		reset       bool
		skipVerify  bool
		itemFlags   []string
		accessFlags []string
		input       quoteInput
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Walk the quote wizard against a running server and submit the quote",
		Long: `quote fills the five wizard steps from flags, resolves the distance through the server,
and submits the quote. Progress is kept in the session directory, so a rerun resumes where
the last one stopped.`,
		Example: `  bhc quote --item sofa_qty=1 --line1 "1 High Street" --postcode "BS1 1AA" \
    --first-name Sam --last-name Jones --email sam@example.com --phone "07123 456789" --consent`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := parseItems(itemFlags)
			if err != nil {
				return err
			}
			input.items = items
			input.access = accessFlags

			httpClient := &http.Client{Timeout: 15 * time.Second}
			api := client.NewQuoteAPI(serverURL, httpClient)
			machine := wizard.NewMachine(wizard.NewFileRepository(sessionDir))
			if reset {
				machine.Dispatch(wizard.Reset{})
			}

			var verifier distance.PostcodeVerifier
			if !skipVerify {
				verifier = service.NewPostcodeService(httpClient)
			}
			resolver := distance.NewResolver(verifier, api, machine)
			submitter := wizard.NewSubmitter(machine, api)

			return runQuote(cmd.Context(), cmd.OutOrStdout(), machine, resolver, submitter, input)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the quote API")
	flags.StringVar(&sessionDir, "session-dir", ".bhc-session", "directory holding the resumable wizard state")
	flags.BoolVar(&reset, "reset", false, "start a new quote instead of resuming")
	flags.BoolVar(&skipVerify, "skip-postcode-check", false, "do not verify the postcode with postcodes.io")
	flags.StringArrayVar(&itemFlags, "item", nil, "item quantity as code=qty (repeatable)")
	flags.StringArrayVar(&accessFlags, "access", nil, "access issue code (repeatable)")
	flags.StringVar(&input.address.Line1, "line1", "", "street address")
	flags.StringVar(&input.address.City, "city", "", "town or city")
	flags.StringVar(&input.address.Postcode, "postcode", "", "UK postcode")
	flags.StringVar(&input.contact.FirstName, "first-name", "", "first name")
	flags.StringVar(&input.contact.LastName, "last-name", "", "last name")
	flags.StringVar(&input.contact.Email, "email", "", "email address")
	flags.StringVar(&input.contact.Phone, "phone", "", "phone number")
	flags.StringVar(&input.contact.Notes, "notes", "", "anything the crew should know")
	flags.BoolVar(&input.consent, "consent", false, "agree to the processing of the details given")
	flags.StringVar(&input.token, "token", "", "verification token, when the server requires one")
	return cmd
}

// runQuote moves the wizard from its current step to the end, stopping at the first step
// that cannot advance
func runQuote(ctx context.Context, w io.Writer, machine *wizard.Machine, resolver *distance.Resolver, submitter *wizard.Submitter, input quoteInput) error {
	state := machine.State()
	if state.Submitted && state.PriceResult != nil {
		fmt.Fprintln(w, "Quote already submitted, use --reset to start a new one")
		printEstimate(w, *state.PriceResult)
		return nil
	}

	codes := make([]string, 0, len(input.items))
	for code := range input.items {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		machine.Dispatch(wizard.SetItemQuantity{Code: code, Quantity: input.items[code]})
	}
	for _, code := range input.access {
		if !machine.State().HasAccessIssue(code) {
			machine.Dispatch(wizard.ToggleAccessIssue{Code: code})
		}
	}

	addressChanged := false
	for field, value := range map[wizard.AddressField]string{
		wizard.AddressLine1:    input.address.Line1,
		wizard.AddressCity:     input.address.City,
		wizard.AddressPostcode: input.address.Postcode,
	} {
		if value != "" {
			machine.Dispatch(wizard.SetAddressField{Field: field, Value: value})
			addressChanged = true
		}
	}

	for field, value := range map[wizard.ContactField]string{
		wizard.ContactFirstName: input.contact.FirstName,
		wizard.ContactLastName:  input.contact.LastName,
		wizard.ContactEmail:     input.contact.Email,
		wizard.ContactPhone:     input.contact.Phone,
		wizard.ContactNotes:     input.contact.Notes,
	} {
		if value != "" {
			machine.Dispatch(wizard.SetContactField{Field: field, Value: value})
		}
	}
	if input.consent {
		machine.Dispatch(wizard.SetConsent{Consent: true})
	}
	if input.token != "" {
		machine.Dispatch(wizard.SetVerificationToken{Token: input.token})
	}

	for machine.State().CurrentStep < 4 {
		state := machine.State()
		if state.CurrentStep == 3 && (addressChanged || !state.Distance.Calculated) {
			resolveDistance(ctx, w, resolver, state.Address)
			addressChanged = false
		}
		if !wizard.CanAdvance(machine.State()) {
			return fmt.Errorf("step %d is incomplete: %s", state.CurrentStep, stepHint(state.CurrentStep))
		}
		machine.Dispatch(wizard.NextStep{})
	}
	if addressChanged {
		resolveDistance(ctx, w, resolver, machine.State().Address)
	}

	result, err := submitter.Submit(ctx)
	var local *wizard.LocalValidationError
	if errors.As(err, &local) {
		fields := make([]string, 0, len(local.Fields))
		for field, message := range local.Fields {
			fields = append(fields, fmt.Sprintf("  %s: %s", field, message))
		}
		sort.Strings(fields)
		for _, line := range fields {
			fmt.Fprintln(w, line)
		}
		return fmt.Errorf("step 4 is incomplete: %w", err)
	}
	if err != nil {
		if state := machine.State(); state.Error != "" {
			return errors.New(state.Error)
		}
		return err
	}

	fmt.Fprintln(w, "Quote submitted")
	printEstimate(w, result.Price)
	return nil
}

func resolveDistance(ctx context.Context, w io.Writer, resolver *distance.Resolver, address models.Address) {
	outcome := resolver.OnPostcodeCommitted(ctx, address.Line1, address.Postcode)
	if outcome.Skipped {
		return
	}
	if outcome.Postcode.Status != "" && !outcome.Postcode.Valid() {
		fmt.Fprintf(w, "Postcode check: %s\n", outcome.Postcode.Error)
	}
	if outcome.Applied && outcome.Distance != nil {
		fmt.Fprintf(w, "Distance from depot: %s (%s)\n", outcome.Distance.DistanceText, outcome.Distance.DurationText)
	}
}

func stepHint(step int) string {
	switch step {
	case 1:
		return "select at least one item with --item"
	case 3:
		return "give --line1 and a full --postcode"
	default:
		return "missing details"
	}
}
