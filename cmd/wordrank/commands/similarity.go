package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/wordrank/rank"
	"github.com/viant/wordrank/vector"
)

func newSimilarityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <word> <word>",
		Short: "Compare two words",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSource, err := a.source(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSource()
			vectors, err := src.Lookup(cmd.Context(), args)
			if err != nil {
				return err
			}
			va, ok := vectors[args[0]]
			if !ok {
				return fmt.Errorf("%w: %q", rank.ErrUnknownTargetWord, args[0])
			}
			vb, ok := vectors[args[1]]
			if !ok {
				return fmt.Errorf("%w: %q", rank.ErrUnknownTargetWord, args[1])
			}
			cosine, err := vector.CosineSimilarity(va, vb)
			if err != nil {
				return err
			}
			distance, err := vector.CosineDistance(va, vb)
			if err != nil {
				return err
			}
			l2, err := vector.L2Distance(va, vb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cosine similarity: %.6f\n", cosine)
			fmt.Fprintf(out, "cosine distance:   %.6f\n", distance)
			fmt.Fprintf(out, "euclidean:         %.6f\n", l2)
			fmt.Fprintf(out, "norms:             %.6f %.6f\n", vector.Magnitude(va), vector.Magnitude(vb))
			return nil
		},
	}
}
