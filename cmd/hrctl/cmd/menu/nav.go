package menu

import (
	"context"
	"strings"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/client"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/gate"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/menu"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var navCmd = &cobra.Command{
	Use:   "nav <path>",
	Short: "Show where the shell would take you for a route",
	Long: `Runs the route guard for a path: the token preflight, session
validation, the login/home redirect policy and the screen's menu
permission. Prints the final route, the highlighted menu keys and the
breadcrumbs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := config.MustFromContext(cmd.Context()).ClientProvider
		res, err := navigate(cmd.Context(), p, args[0])
		if err != nil {
			return err
		}

		for _, r := range res.Redirects {
			pterm.Warning.Printf("redirect -> %s\n", r)
		}
		if res.Denied != "" {
			pterm.Error.Printf("screen requires permission %q\n", res.Denied)
		}
		pterm.Info.Printf("Route: %s\n", res.Path)
		pterm.Info.Printf("Selected: %s\n", strings.Join(res.Selected, " > "))
		pterm.Info.Printf("Breadcrumbs: %s\n", formatCrumbs(res.Crumbs))
		return nil
	},
}

type navResult struct {
	Path      string
	Redirects []string
	Denied    string
	Selected  []string
	Crumbs    []menu.Crumb
}

// navigate resolves where a visit to path ends up for the current session.
func navigate(ctx context.Context, p *client.Provider, path string) (*navResult, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	res := &navResult{Path: path}

	if intent := gate.PreflightIntent(p.HasToken(), path); !intent.IsZero() {
		res.Redirects = append(res.Redirects, intent.Redirect)
		res.Path = intent.Redirect
		if intent.Redirect == gate.LoginPath {
			return res.finish(), nil
		}
	}

	g, err := p.Gate()
	if err != nil {
		return nil, err
	}
	router := gate.NewRouter(g, gate.NavigatorFunc(func(target string) {
		res.Redirects = append(res.Redirects, target)
	}), res.Path)
	defer router.Close()

	if err := g.CheckAuth(ctx); err != nil {
		pterm.Warning.Printf("session invalid: %v\n", err)
	}
	res.Path = router.Path()

	snap := g.Snapshot()
	if snap.IsAuthenticated() {
		if perm, ok := menu.RequiredPermission(res.Path); ok && perm != "" && !snap.HasPermission(perm) {
			res.Denied = perm
		}
	}
	return res.finish(), nil
}

func (r *navResult) finish() *navResult {
	r.Selected = menu.SelectedKeys(r.Path)
	r.Crumbs = menu.Breadcrumbs(r.Path)
	return r
}

func formatCrumbs(crumbs []menu.Crumb) string {
	titles := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		titles = append(titles, c.Title)
	}
	return strings.Join(titles, " / ")
}
