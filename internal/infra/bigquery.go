package infra

import (
	"context"
	"os"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"roamio/pkg/logger"
)

// InitBigQuery opens the warehouse client. Returns nil when
// GOOGLE_CLOUD_PROJECT is unset so analytics degrades to logging only.
func InitBigQuery(ctx context.Context) *bigquery.Client {
	project := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if project == "" {
		logger.Log.Warn("GOOGLE_CLOUD_PROJECT not set, BigQuery analytics disabled")
		return nil
	}

	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		logger.Log.WithError(err).Error("failed to create BigQuery client")
		return nil
	}
	return client
}

func CloseBigQuery(client *bigquery.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.Log.WithError(err).Error("error closing BigQuery client")
	}
}
