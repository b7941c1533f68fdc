package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"crosswarped.com/springs/internal/config"
)

// recordSource loads the raw record lines stored under a scope.
type recordSource interface {
	Records(ctx context.Context, scope string) ([]string, error)
}

type bigQuerySource struct {
	cfg config.BigQueryConfig
}

func (s bigQuerySource) Records(ctx context.Context, scope string) ([]string, error) {
	client, err := bigquery.NewClient(ctx, s.cfg.Project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf("SELECT record FROM `%s` WHERE scope = @scope ORDER BY line", s.cfg.TableRef()))
	q.Parameters = []bigquery.QueryParameter{{Name: "scope", Value: scope}}
	q.Location = s.cfg.Location

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var lines []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		line, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// noSource serves deployments without a BigQuery project.
type noSource struct{}

func (noSource) Records(context.Context, string) ([]string, error) {
	return nil, fmt.Errorf("%w: scoped records are not configured", errBadRequest)
}
