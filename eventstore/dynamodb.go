package eventstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBStorage is a Storage implementation using a DynamoDB table with
// aggregate_id as the hash key and version as the range key. The conditional
// write on the range key doubles as a guard against racing appenders.
type DynamoDBStorage struct {
	tableName string
	api       *dynamodb.Client
}

// GetDynamoDBStorage returns a new DynamoDB-backed storage instance.
func GetDynamoDBStorage(tableName string, api *dynamodb.Client) *DynamoDBStorage {
	return &DynamoDBStorage{tableName: tableName, api: api}
}

// FindByAggregateID implements the Storage interface and reads all records
// for a specific aggregate id.
func (s *DynamoDBStorage) FindByAggregateID(ctx context.Context, aggregateID string) (History, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		Select:                 types.SelectAllAttributes,
		ConsistentRead:         aws.Bool(true),
		KeyConditionExpression: aws.String("#key = :key"),
		ExpressionAttributeNames: map[string]string{
			"#key": AttrAggregateID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: aggregateID},
		},
	}

	history := History{}
	paginator := dynamodb.NewQueryPaginator(s.api, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var records []Record
		if err = attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
			return nil, err
		}
		history = append(history, records...)
	}

	sort.Sort(history)
	return history, nil
}

// FindAll implements the Storage interface and scans the whole table.
func (s *DynamoDBStorage) FindAll(ctx context.Context) ([]Record, error) {
	var records []Record
	paginator := dynamodb.NewScanPaginator(s.api, &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []Record
		if err = attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		records = append(records, page...)
	}
	return records, nil
}

// Save implements the Storage interface and appends one record. The write is
// conditional on the (aggregate_id, version) item not existing yet.
func (s *DynamoDBStorage) Save(ctx context.Context, record Record) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return err
	}

	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String(fmt.Sprintf("attribute_not_exists(%s)", AttrVersion)),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("%w: aggregate %s already has version %d", ErrConcurrencyConflict, record.AggregateID, record.Version)
		}
		return err
	}
	return nil
}
