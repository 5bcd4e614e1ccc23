package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dwikikusuma/gomarketplace/internal/cart/app"
	"github.com/dwikikusuma/gomarketplace/internal/cart/domain"
	"github.com/dwikikusuma/gomarketplace/internal/cart/infra"
	"github.com/dwikikusuma/gomarketplace/internal/cart/provider"
	"github.com/dwikikusuma/gomarketplace/pkg/config"
	"github.com/dwikikusuma/gomarketplace/pkg/logger"
)

type globalFlags struct {
	configPath string
	storePath  string
	backend    string
	asJSON     bool
}

// session holds the store opened for one invocation. It is closed by the
// caller after Execute returns, whichever hook or command failed.
type session struct {
	closer io.Closer
}

func (s *session) close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

func newRootCmd() (*cobra.Command, *session) {
	var flags globalFlags
	sess := &session{}

	root := &cobra.Command{
		Use:          "cartctl",
		Short:        "Inspect and edit the persisted shopping cart",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(flags.configPath)
			if err != nil {
				return err
			}
			if flags.storePath != "" {
				cfg.Store.BuntPath = flags.storePath
			}
			if flags.backend != "" {
				cfg.Store.Backend = strings.ToLower(flags.backend)
			}

			log := logger.New(logger.Options{
				Service: "cartctl",
				Env:     cfg.AppEnv,
				Level:   cfg.LogLevel,
				Text:    true,
				Output:  cmd.ErrOrStderr(),
			})

			ctx := cmd.Context()
			store, c, err := infra.Open(ctx, cfg.Store, log)
			if err != nil {
				return err
			}
			sess.closer = c

			svc := app.NewService(store, cfg.Store.Key, log)
			if err := svc.Load(ctx); err != nil {
				return err
			}
			cmd.SetContext(provider.NewContext(ctx, svc))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "TOML config file")
	pf.StringVar(&flags.storePath, "db", "", "buntdb file holding the cart (overrides config)")
	pf.StringVar(&flags.backend, "store", "", "store backend: bunt, redis or memory")
	pf.BoolVar(&flags.asJSON, "json", false, "print the cart as JSON")

	root.AddCommand(
		newListCmd(&flags),
		newAddCmd(&flags),
		newStepCmd(&flags, "inc", "Add one unit of an item already in the cart", provider.Cart.Increment),
		newStepCmd(&flags, "dec", "Remove one unit of an item; the last unit drops the line", provider.Cart.Decrement),
	)
	return root, sess
}

func newListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := provider.From(cmd.Context())
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), cart, flags.asJSON)
		},
	}
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	var p domain.Product
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Put a product in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := provider.From(cmd.Context())
			if err != nil {
				return err
			}
			if err := cart.AddToCart(cmd.Context(), p); err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), cart, flags.asJSON)
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.ID, "id", "", "product id")
	f.StringVar(&p.Title, "title", "", "product title")
	f.StringVar(&p.ImageURL, "image-url", "", "product image url")
	f.Float64Var(&p.Price, "price", 0, "unit price")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

type stepFunc func(c provider.Cart, ctx context.Context, id string) error

func newStepCmd(flags *globalFlags, use, short string, step stepFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := provider.From(cmd.Context())
			if err != nil {
				return err
			}
			if err := step(cart, cmd.Context(), args[0]); err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), cart, flags.asJSON)
		},
	}
}

func printCart(w io.Writer, cart provider.Cart, asJSON bool) error {
	items := cart.Products()
	sum := cart.Summary()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Products []domain.LineItem `json:"products"`
			Summary  domain.Summary    `json:"summary"`
		}{items, sum})
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "cart is empty")
		return err
	}
	for _, it := range items {
		if _, err := fmt.Fprintf(w, "%-12s %-24s x%-3d %10.2f\n", it.ID, it.Title, it.Quantity, it.Price*float64(it.Quantity)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d units, total %.2f\n", sum.Units, sum.Total)
	return err
}
