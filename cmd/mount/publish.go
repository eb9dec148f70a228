package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mount/internal/config"
	"github.com/vango-dev/mount/internal/errors"
	"github.com/vango-dev/mount/pkg/dom"
	"github.com/vango-dev/mount/pkg/element"
	"github.com/vango-dev/mount/pkg/publish"
)

func publishCmd(flags *globalFlags) *cobra.Command {
	var (
		name      string
		document  string
		container string
		dir       string
	)

	cmd := &cobra.Command{
		Use:   "publish [descriptor.json...]",
		Short: "Render a document and upload it",
		Long: `Mount each descriptor file into the document and upload the result.

The document goes to the S3 bucket configured in mount.json
("publish.bucket", or MOUNT_PUBLISH_BUCKET), or to a local
directory with --dir. S3 credentials come from the standard AWS
chain: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, AWS_PROFILE and
the shared ~/.aws files, or an instance role.

Examples:
  mount publish hero.json footer.json --name index.html
  mount publish card.json --dir ./public`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if document == "" {
				document = cfg.DocumentPath()
			}
			if container == "" {
				container = cfg.Container
			}

			logger := newLogger(cfg, flags.verbose, cmd.ErrOrStderr())
			renderer, err := newRenderer(cfg, false, logger, nil)
			if err != nil {
				return err
			}

			doc, err := loadDocument(document)
			if err != nil {
				return err
			}
			err = mountFiles(cmd.Context(), doc, container, args,
				func(ctx context.Context, d *element.Descriptor, c *dom.Node) error {
					_, err := renderer.Mount(ctx, d, c)
					return err
				})
			if err != nil {
				return err
			}

			store, err := newStore(cmd.Context(), cfg, dir)
			if err != nil {
				return err
			}
			res, err := publish.New(store, publish.WithLogger(logger)).Publish(cmd.Context(), name, doc)
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Published %s (%d bytes)", res.Location, res.Size)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "index.html", "Object name for the document")
	cmd.Flags().StringVarP(&document, "document", "d", "", "HTML document to mount into (default blank)")
	cmd.Flags().StringVar(&container, "container", "", "Container selector (default from mount.json)")
	cmd.Flags().StringVar(&dir, "dir", "", "Write to this directory instead of S3")

	return cmd
}

// newStore picks the publish destination.
func newStore(ctx context.Context, cfg *config.Config, dir string) (publish.Store, error) {
	if dir != "" {
		return publish.NewDiskStore(dir)
	}
	if !cfg.PublishEnabled() {
		return nil, errors.New(errors.CodePublishDisabled).
			WithDetail("set publish.bucket in mount.json or pass --dir")
	}
	client, err := publish.NewS3Client(ctx, publish.S3Options{
		Region:    cfg.Publish.Region,
		Endpoint:  cfg.Publish.Endpoint,
		PathStyle: cfg.Publish.PathStyle,
	})
	if err != nil {
		return nil, err
	}
	return publish.NewS3Store(client, cfg.Publish.Bucket, cfg.Publish.Prefix), nil
}
