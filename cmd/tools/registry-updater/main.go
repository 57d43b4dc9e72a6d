// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"funnel-workers/pkg/registry"
)

var registryPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	idAdd := addCmd.String("id", "", "Funnel ID (e.g., magic_tool_student)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Magic Tool Student)")
	description := addCmd.String("description", "", "Description")
	vslVariant := addCmd.String("vslVariant", "", "VSL variant key (e.g., student_v2)")
	landingPath := addCmd.String("landingPath", "", "Landing page path (e.g., /start/student)")
	checkoutProductID := addCmd.String("checkoutProductId", "", "Checkout product ID")
	currency := addCmd.String("currency", "EUR", "Pricing currency")
	amount := addCmd.Float64("amount", 0, "Pricing amount")
	addCmd.StringVar(&registryPath, "path", "configs/funnel-registry.json", "Path to registry file")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Funnel ID to update")
	field := updateCmd.String("field", "", "Field to update (vslVariant, landingPath, checkoutProductId, displayName, description, amount)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&registryPath, "path", "configs/funnel-registry.json", "Path to registry file")

	// Validate command flags
	validateCmd.StringVar(&registryPath, "path", "configs/funnel-registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *vslVariant == "" || *checkoutProductID == "" {
			fmt.Println("Error: id, vslVariant, and checkoutProductId are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		funnel := registry.Funnel{
			ID:                *idAdd,
			DisplayName:       *displayName,
			Description:       *description,
			VSLVariant:        *vslVariant,
			LandingPath:       *landingPath,
			CheckoutProductID: *checkoutProductID,
			Pricing: registry.Pricing{
				Currency: *currency,
				Amount:   *amount,
			},
			EmailSequence: []registry.EmailStep{},
			Tags:          []string{},
		}
		err := addFunnel(&funnel)
		if err != nil {
			fmt.Printf("Error adding funnel: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added funnel: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err := updateFunnel(*idUpdate, *field, *value)
		if err != nil {
			fmt.Printf("Error updating funnel: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated funnel %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		err := validateRegistry()
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func addFunnel(funnel *registry.Funnel) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		// If file doesn't exist, create new registry
		if os.IsNotExist(err) {
			reg = &registry.FunnelRegistry{
				Version:     "1.0.0",
				LastUpdated: time.Now().Format(time.RFC3339),
				Funnels:     []registry.Funnel{},
			}
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	// Check if funnel already exists
	if _, exists := reg.FindFunnel(funnel.ID); exists {
		return fmt.Errorf("funnel with ID %s already exists", funnel.ID)
	}

	reg.Funnels = append(reg.Funnels, *funnel)
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry invalid after add: %w", err)
	}

	return saveRegistry(reg, registryPath)
}

func updateFunnel(id, field, value string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	found := false
	for i := range reg.Funnels {
		if reg.Funnels[i].ID == id {
			found = true
			switch field {
			case "displayName":
				reg.Funnels[i].DisplayName = value
			case "description":
				reg.Funnels[i].Description = value
			case "vslVariant":
				reg.Funnels[i].VSLVariant = value
			case "landingPath":
				reg.Funnels[i].LandingPath = value
			case "checkoutProductId":
				reg.Funnels[i].CheckoutProductID = value
			case "currency":
				reg.Funnels[i].Pricing.Currency = value
			case "amount":
				amount, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid amount value: %w", err)
				}
				reg.Funnels[i].Pricing.Amount = amount
			default:
				return fmt.Errorf("unknown field: %s", field)
			}
			break
		}
	}

	if !found {
		return fmt.Errorf("funnel with ID %s not found", id)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)

	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry invalid after update: %w", err)
	}

	return saveRegistry(reg, registryPath)
}

func validateRegistry() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Funnels) == 0 {
		return fmt.Errorf("registry contains no funnels")
	}

	fmt.Printf("Registry validation passed. Found %d funnels.\n", len(reg.Funnels))
	return nil
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *registry.FunnelRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add     Add a new funnel to the registry
  update  Update an existing funnel's field
  validate Validate the registry file
  help    Show this help message

Examples:
  registry-updater add -id magic_tool_student -displayName "Magic Tool Student" -vslVariant student_v2 -landingPath /start/student -checkoutProductId prod_483911 -amount 47
  registry-updater update -id magic_tool_student -field vslVariant -value student_v3
  registry-updater validate -path configs/funnel-registry.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
