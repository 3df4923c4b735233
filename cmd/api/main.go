package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/telecom-hire-backend/api/internal/config"
	mongodoc "github.com/sngm3741/telecom-hire-backend/api/internal/infrastructure/mongo"
	"github.com/sngm3741/telecom-hire-backend/api/internal/logger"
	publicapp "github.com/sngm3741/telecom-hire-backend/api/internal/public/application"
	"github.com/sngm3741/telecom-hire-backend/api/internal/server"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hire-api",
		Short: "Telecom hire submission backend",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.New(cfg.LogLevel, cfg.LogFormat)

			client, err := connectMongo(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to MongoDB: %w", err)
			}

			return server.New(cfg, client, log).Run()
		},
	}
}

func seedCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample submissions for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.New(cfg.LogLevel, cfg.LogFormat)

			ctx := cmd.Context()
			client, err := connectMongo(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to MongoDB: %w", err)
			}
			defer func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error().Err(err).Msg("MongoDB 切断時にエラー")
				}
			}()

			repo := mongodoc.NewSubmissionRepository(client.Database(cfg.MongoDatabase), cfg.MongoCollection)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}

			commands := publicapp.NewSubmissionCommandService(repo)
			for i, cmdInput := range sampleSubmissions(count) {
				submission, err := commands.Submit(ctx, cmdInput)
				if err != nil {
					return fmt.Errorf("seed submission %d: %w", i+1, err)
				}
				log.Info().Str("reference", submission.Reference).Str("email", submission.EmailPrimary).Msg("seeded submission")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of sample submissions to insert")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

// connectMongo は接続タイムアウト付きで Mongo クライアントを初期化する。
// Stable API v1 を指定し、サーバー側のバージョン差異による挙動変化を避ける。
func connectMongo(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	return mongo.Connect(ctx, clientOptions)
}

// sampleSubmissions はシード用のダミー応募を生成する。
func sampleSubmissions(count int) []publicapp.SubmitSubmissionCommand {
	base := []publicapp.SubmitSubmissionCommand{
		{
			EmailPrimary:            "ramesh.kumar@example.com",
			Circle:                  "Mumbai",
			State:                   "Maharashtra",
			District:                "Thane",
			Name:                    "Ramesh Kumar",
			ContactNumber:           "9820012345",
			PinCode:                 "400601",
			Designation:             "Rigger",
			Activity:                "Tower Maintenance",
			WorkAtHeightCertificate: "yes",
			PPEs:                    "yes",
		},
		{
			EmailPrimary:            "sunita.devi@example.com",
			Circle:                  "Bihar",
			State:                   "Bihar",
			District:                "Patna",
			Name:                    "Sunita Devi",
			ContactNumber:           "9431098765",
			PinCode:                 "800001",
			Designation:             "Technician",
			Activity:                "Fiber Splicing",
			WorkAtHeightCertificate: "no",
			PPEs:                    "yes",
		},
		{
			EmailPrimary:            "arjun.singh@example.com",
			Circle:                  "Punjab",
			State:                   "Punjab",
			District:                "Ludhiana",
			Name:                    "Arjun Singh",
			ContactNumber:           "9876054321",
			PinCode:                 "141001",
			Designation:             "Supervisor",
			Activity:                "Site Survey",
			WorkAtHeightCertificate: "yes",
			PPEs:                    "no",
		},
	}

	if count <= 0 {
		return nil
	}

	out := make([]publicapp.SubmitSubmissionCommand, 0, count)
	for i := 0; i < count; i++ {
		sample := base[i%len(base)]
		if i >= len(base) {
			// ユニークインデックスに当たらないようメールへ連番を振る
			sample.EmailPrimary = fmt.Sprintf("seed+%d.%s", i, sample.EmailPrimary)
		}
		out = append(out, sample)
	}
	return out
}
