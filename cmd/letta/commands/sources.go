package commands

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewSourcesCommand creates the sources command group.
func NewSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sources",
		Aliases: []string{"source"},
		Short:   "Manage data sources",
		Long:    "List, inspect and delete data sources, and upload files to them",
	}

	cmd.AddCommand(newSourcesListCommand())
	cmd.AddCommand(newSourcesGetCommand())
	cmd.AddCommand(newSourcesDeleteCommand())
	cmd.AddCommand(newSourcesFilesCommand())
	cmd.AddCommand(newSourcesUploadCommand())

	return cmd
}

func newSourcesListCommand() *cobra.Command {
	var agentID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sources",
		Long:  "List data sources, or the sources attached to an agent with --agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			var sources []letta.Source
			if agentID != "" {
				sources, err = client.Sources().ListForAgent(ctx, agentID)
			} else {
				sources, err = client.Sources().List(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list sources: %w", err)
			}

			return renderList(cmd, sources, "sources", []string{"ID", "Name", "Description", "Created"}, func(source letta.Source) []string {
				return []string{source.ID, source.Name, truncate(source.Description, constants.TruncateLength), formatTimestamp(source.CreatedAt)}
			})
		},
	}

	cmd.Flags().StringVar(&agentID, "agent", "", "list the sources attached to this agent")

	return cmd
}

func newSourcesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SOURCE_ID_OR_NAME",
		Short: "Get source details",
		Long:  "Display detailed information about a source given its id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			source, err := resolveSource(ctx, client, args[0])
			if err != nil {
				return err
			}

			return renderDetails(cmd, source, func(table *tablewriter.Table) {
				_ = table.Append("ID", source.ID)
				_ = table.Append("Name", source.Name)
				appendRow(table, "Description", source.Description)
				appendRow(table, "Instructions", truncate(source.Instructions, constants.TruncateLength))

				if source.EmbeddingConfig != nil {
					appendRow(table, "Embedding", source.EmbeddingConfig.EmbeddingModel)
				}

				_ = table.Append("Created", formatTimestamp(source.CreatedAt))
			})
		},
	}
}

// resolveSource looks a source up by id, falling back to its name.
func resolveSource(ctx context.Context, client letta.Client, idOrName string) (*letta.Source, error) {
	if letta.IsResourceID(idOrName) {
		source, err := client.Sources().Get(ctx, idOrName)
		if err != nil {
			return nil, fmt.Errorf("failed to get source: %w", err)
		}

		return source, nil
	}

	id, err := client.Sources().GetIDByName(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("failed to find source '%s': %w", idOrName, err)
	}

	source, err := client.Sources().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get source: %w", err)
	}

	return source, nil
}

func newSourcesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SOURCE_ID...",
		Short: "Delete sources",
		Long:  "Delete one or more data sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return deleteEach(cmd, "source", args, func(ctx context.Context, id string) error {
				return client.Sources().Delete(ctx, id)
			})
		},
	}
}

func newSourcesFilesCommand() *cobra.Command {
	var (
		limit         int
		before, after string
	)

	cmd := &cobra.Command{
		Use:   "files SOURCE_ID",
		Short: "List source files",
		Long:  "List the files uploaded to a data source and their processing status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			files, err := client.Sources().ListFiles(commandContext(cmd), args[0], &letta.ListFilesParams{
				ListParams: limitParams(limit, before, after),
			})
			if err != nil {
				return fmt.Errorf("failed to list files: %w", err)
			}

			return renderList(cmd, files, "files", []string{"ID", "Name", "Status", "Size", "Chunks"}, func(file letta.FileMetadata) []string {
				return []string{
					file.ID,
					file.FileName,
					orNotAvailable(string(file.ProcessingStatus)),
					strconv.FormatInt(file.FileSize, 10),
					fmt.Sprintf("%d/%d", file.ChunksEmbedded, file.TotalChunks),
				}
			})
		},
	}

	addListFlags(cmd, &limit, &before, &after)

	return cmd
}

func newSourcesUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload SOURCE_ID FILE",
		Short: "Upload a file to a source",
		Long:  "Upload a file for the server to parse and embed into a data source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			name := filepath.Base(args[1])

			result, err := client.Sources().UploadFile(commandContext(cmd), args[0], &letta.FileUpload{
				FileName:    name,
				ContentType: mime.TypeByExtension(filepath.Ext(name)),
				Data:        data,
			})
			if err != nil {
				return fmt.Errorf("failed to upload file: %w", err)
			}

			out := cmd.OutOrStdout()
			if result.File != nil {
				_, _ = fmt.Fprintf(out, "Uploaded %s as file %s (%s)\n", name, result.File.ID, orNotAvailable(string(result.File.ProcessingStatus)))
			} else if result.Job != nil {
				_, _ = fmt.Fprintf(out, "Uploaded %s; ingestion job %s is %s\n", name, result.Job.ID, result.Job.Status)
			}

			return nil
		},
	}
}
