package records

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/metrics"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// skMax sorts after any "<RFC3339>#<id>" sort key with the same prefix.
const skMax = "￿"

// DynamoDBStore implements Store using AWS DynamoDB. Both tables are keyed
// (TenantID, SK) with SK = "<RFC3339 createdAt>#<id>", so a date window is
// a single key-range query per tenant.
type DynamoDBStore struct {
	client  *dynamodb.Client
	config  DynamoConfig
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewDynamoDBStore creates a new DynamoDB store
func NewDynamoDBStore(ctx context.Context, cfg DynamoConfig, logger zerolog.Logger) (*DynamoDBStore, error) {
	var client *dynamodb.Client

	if cfg.Mode == DynamoModeLocal {
		// For local mode, build the client directly without LoadDefaultConfig.
		// LoadDefaultConfig probes the EC2 IMDS endpoint which hangs on EC2
		// instances when static credentials are intended.
		client = dynamodb.New(dynamodb.Options{
			Region:       cfg.Region,
			BaseEndpoint: aws.String(cfg.Endpoint),
			Credentials:  credentials.NewStaticCredentialsProvider("local", "local", ""),
		})
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client = dynamodb.NewFromConfig(awsCfg)
	}

	store := &DynamoDBStore{
		client:  client,
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.FetchRate), int(cfg.FetchRate)),
		logger:  logger,
	}

	// Create tables in local mode
	if cfg.Mode == DynamoModeLocal {
		if err := CreateTablesIfNotExist(ctx, client, cfg, logger); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("mode", string(cfg.Mode)).
		Str("region", cfg.Region).
		Msg("DynamoDB store initialized")

	return store, nil
}

// FetchCalls returns all call rows for the tenant in [from, to].
func (s *DynamoDBStore) FetchCalls(ctx context.Context, tenantID string, from, to time.Time) ([]types.CallRecord, error) {
	items, err := s.queryRange(ctx, s.config.CallsTable, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query calls: %w", err)
	}

	var calls []types.CallRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &calls); err != nil {
		return nil, fmt.Errorf("failed to unmarshal call records: %w", err)
	}
	return filterCallsByRange(calls, from, to), nil
}

// FetchTickets returns all ticket rows for the tenant in [from, to].
func (s *DynamoDBStore) FetchTickets(ctx context.Context, tenantID string, from, to time.Time) ([]types.TicketRecord, error) {
	items, err := s.queryRange(ctx, s.config.TicketsTable, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}

	var tickets []types.TicketRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &tickets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket records: %w", err)
	}
	return filterTicketsByRange(tickets, from, to), nil
}

// queryRange pages through a tenant's key range in fixed-size pages until
// a missing LastEvaluatedKey signals completion. Page fetches go through
// the store's rate limiter, the only shared state at this boundary.
func (s *DynamoDBStore) queryRange(ctx context.Context, table, tenantID string, from, to time.Time) ([]map[string]dbtypes.AttributeValue, error) {
	keyCond := expression.Key("TenantID").Equal(expression.Value(tenantID)).
		And(expression.Key("SK").Between(
			expression.Value(from.UTC().Format(time.RFC3339)),
			expression.Value(to.UTC().Format(time.RFC3339)+skMax),
		))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	m := metrics.Get()

	var items []map[string]dbtypes.AttributeValue
	var lastKey map[string]dbtypes.AttributeValue

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("fetch cancelled: %w", err)
		}

		input := &dynamodb.QueryInput{
			TableName:                 aws.String(table),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Limit:                     aws.Int32(s.config.PageSize),
		}
		if lastKey != nil {
			input.ExclusiveStartKey = lastKey
		}

		result, err := s.client.Query(ctx, input)
		if err != nil {
			m.RecordFetchError()
			return nil, err
		}
		m.RecordFetchPage(len(result.Items))

		items = append(items, result.Items...)

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	s.logger.Debug().
		Str("table", table).
		Str("tenant_id", tenantID).
		Int("rows", len(items)).
		Msg("range query completed")

	return items, nil
}

// NewStore creates the appropriate store based on configuration
func NewStore(ctx context.Context, logger zerolog.Logger) (Store, error) {
	cfg := LoadDynamoConfig()

	switch cfg.Mode {
	case DynamoModeLocal, DynamoModeAWS:
		return NewDynamoDBStore(ctx, cfg, logger)
	default:
		logger.Info().Msg("DynamoDB disabled (DYNAMO_MODE=none)")
		return NewNoopStore(), nil
	}
}
