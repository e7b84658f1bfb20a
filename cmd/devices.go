package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zbierak/ipa/internal/model"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Enumerate attached devices and print album/photo counts without mounting",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		names := reg.Names()
		if len(names) == 0 {
			fmt.Println("No attached devices with a readable photo database were found.")
			return nil
		}

		fmt.Printf("%-20s %-10s %s\n", "DEVICE", "ALBUMS", "PHOTOS")
		for _, name := range names {
			cat, err := reg.GetByFSName(name)
			if err != nil {
				continue
			}
			photos := 0
			cat.ForEachAlbum(func(a *model.Album) bool {
				photos += a.Len()
				return true
			})
			fmt.Printf("%-20s %-10d %d\n", name, cat.AlbumCount(), photos)
		}
		return nil
	},
}
