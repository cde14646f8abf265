// Package storeselect resolves which configured storefront endpoint a
// command should talk to.
package storeselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/shopd-dev/shopd/internal/cli/config"
	"github.com/shopd-dev/shopd/internal/cli/userconfig"
)

// ResolveStore determines which store to use:
//  1. An explicit alias flag wins.
//  2. The alias selected via 'shopd select-store'.
//  3. A single configured store is used automatically.
//  4. Otherwise the user picks interactively.
func ResolveStore(projectConfig *config.Config, alias string) (*config.Store, error) {
	if alias != "" {
		return projectConfig.GetStoreByAlias(alias)
	}

	selected, err := userconfig.GetSelectedStore()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	if selected != "" {
		store, err := projectConfig.GetStoreByAlias(selected)
		if err != nil {
			// The selected store no longer exists; clear it and fall
			// through.
			_ = userconfig.SetSelectedStore("")
		} else {
			return store, nil
		}
	}

	if len(projectConfig.Stores) == 1 {
		store := &projectConfig.Stores[0]
		if err := userconfig.SetSelectedStore(store.Alias); err != nil {
			fmt.Printf("Warning: failed to save selected store: %v\n", err)
		}
		return store, nil
	}

	store, err := PromptStoreSelection(projectConfig)
	if err != nil {
		return nil, err
	}
	if err := userconfig.SetSelectedStore(store.Alias); err != nil {
		fmt.Printf("Warning: failed to save selected store: %v\n", err)
	}
	return store, nil
}

// PromptStoreSelection shows an interactive store picker.
func PromptStoreSelection(projectConfig *config.Config) (*config.Store, error) {
	if len(projectConfig.Stores) == 0 {
		return nil, fmt.Errorf("no stores configured in %s", config.ConfigFileName)
	}

	type storeOption struct {
		Label string
		Store *config.Store
	}

	options := make([]storeOption, len(projectConfig.Stores))
	for i := range projectConfig.Stores {
		store := &projectConfig.Stores[i]
		options[i] = storeOption{
			Label: fmt.Sprintf("%s (%s)", store.Alias, store.URL),
			Store: store,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select a store",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("store selection cancelled: %w", err)
	}
	return options[index].Store, nil
}
