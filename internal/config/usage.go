package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/nttmul/internal/ui"
)

func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}
		out := fs.Output()

		fmt.Fprintf(out, "\n%snttmul%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Exact multiplication of long decimal integers with a number-theoretic transform.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] < operands\n  %s -a DIGITS -b DIGITS [flags]\n\n%sFlags:%s\n",
			t.Warning, t.Reset, fs.Name(), fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-28s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nMost flags can also be set through %s<NAME>, e.g. %sENGINE=auto.\n\n", EnvPrefix, EnvPrefix)
	}
}
