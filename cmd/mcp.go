package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/zbierak/ipa/internal/model"
	"github.com/zbierak/ipa/internal/registry"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve a read-only MCP tool server over the attached devices' catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}
		return serveMCP(reg)
	},
}

// serveMCP exposes three read-only tools over reg via stdio: list_devices,
// list_albums and list_photos, so an agent can explore a device's photo
// albums without a FUSE mount.
func serveMCP(reg *registry.Registry) error {
	s := server.NewMCPServer("ipa", Version)

	s.AddTool(
		mcp.NewTool("list_devices", mcp.WithDescription("List attached devices by their registry display name")),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return textResult(reg.Names())
		},
	)

	s.AddTool(
		mcp.NewTool("list_albums",
			mcp.WithDescription("List the albums belonging to a device"),
			mcp.WithString("device", mcp.Required(), mcp.Description("device display name, as returned by list_devices")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			device, err := req.RequireString("device")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			cat, err := reg.GetByFSName(device)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			var names []string
			cat.ForEachAlbum(func(a *model.Album) bool {
				names = append(names, a.Name())
				return true
			})
			return textResult(names)
		},
	)

	s.AddTool(
		mcp.NewTool("list_photos",
			mcp.WithDescription("List the photo file names belonging to an album"),
			mcp.WithString("device", mcp.Required(), mcp.Description("device display name")),
			mcp.WithString("album", mcp.Required(), mcp.Description("album name")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			device, err := req.RequireString("device")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			albumName, err := req.RequireString("album")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			cat, err := reg.GetByFSName(device)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			album, err := cat.GetAlbumByName(albumName)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			var names []string
			album.ForEach(func(p *model.Photo) bool {
				names = append(names, p.FileName())
				return true
			})
			return textResult(names)
		},
	)

	fmt.Println("ipa: serving MCP tools over stdio (list_devices, list_albums, list_photos)")
	return server.ServeStdio(s)
}

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
