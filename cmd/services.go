package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/marcoviana/awsvault/internal/ui"
	"github.com/marcoviana/awsvault/internal/vault"
)

// connectedSession connects to the --account (or an interactively
// chosen one) and hands back the validated session for service
// commands to build their clients from.
func connectedSession(ctx context.Context) (*vault.Session, error) {
	store, coord, err := openVault()
	if err != nil {
		return nil, err
	}

	name := accountFlag
	if name == "" {
		accounts := store.List()
		if len(accounts) == 0 {
			return nil, fmt.Errorf("no stored accounts; add one with: awsvault add")
		}
		selected, err := ui.SelectAccount("Select Account", accounts)
		if err != nil {
			return nil, err
		}
		name = selected
	}

	_, err = ui.Spin(fmt.Sprintf("Connecting to %s...", name), func() (any, error) {
		return nil, coord.Connect(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return coord.ActiveSession(), nil
}

func serviceFail(err error) {
	fmt.Printf("❌ %v\n", err)
	os.Exit(1)
}
