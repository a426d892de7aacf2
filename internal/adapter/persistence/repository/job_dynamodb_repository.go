package repository

import (
	"context"
	"errors"
	"strconv"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultJobsTableName = "jobs"
	jobsInvoiceIDIndex   = "invoice_id-index"
)

// dynamoAPI is the subset of *dynamodb.Client used by the repository.
type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// JobDynamoRepository persists the Job aggregate in DynamoDB, one item per job.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: invoice_id-index (PK: invoice_id), sparse: only invoiced jobs carry it
//
// Writes are conditional on the stored version so that two writers racing
// on the same job cannot both succeed.

type JobDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IJobRepository = (*JobDynamoRepository)(nil)

func NewJobDynamoRepository(ddb *dynamodb.Client) *JobDynamoRepository {
	return newJobDynamoRepository(ddb, getenvDefault("JOBS_TABLE", defaultJobsTableName))
}

func newJobDynamoRepository(ddb dynamoAPI, tableName string) *JobDynamoRepository {
	return &JobDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *JobDynamoRepository) Create(ctx context.Context, job entities.Job) (entities.Job, error) {
	av, err := attributevalue.MarshalMap(toJobItem(job))
	if err != nil {
		return entities.Job{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Job{}, errJobAlreadyExists
		}
		return entities.Job{}, err
	}
	return job, nil
}

func (r *JobDynamoRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Job{}, err
	}
	if len(out.Item) == 0 {
		return entities.Job{}, nil
	}
	return unmarshalJob(out.Item)
}

// GetByInvoiceID resolves the owning job through the GSI, then re-reads it
// by primary key because index reads are eventually consistent.
func (r *JobDynamoRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (entities.Job, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(jobsInvoiceIDIndex),
		KeyConditionExpression: aws.String("invoice_id = :iid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":iid": &types.AttributeValueMemberS{Value: invoiceID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Job{}, err
	}
	if len(out.Items) == 0 {
		return entities.Job{}, nil
	}
	idAttr, ok := out.Items[0]["id"].(*types.AttributeValueMemberS)
	if !ok {
		return entities.Job{}, nil
	}
	return r.GetByID(ctx, idAttr.Value)
}

func (r *JobDynamoRepository) List(ctx context.Context, status entities.JobStatus) ([]entities.Job, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if status != "" {
		in.FilterExpression = aws.String("#status = :status")
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		}
	}

	jobs := make([]entities.Job, 0)
	p := dynamodb.NewScanPaginator(r.ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			job, err := unmarshalJob(raw)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (r *JobDynamoRepository) Save(ctx context.Context, job entities.Job, expectedVersion int64) (entities.Job, error) {
	job.Version = expectedVersion + 1
	av, err := attributevalue.MarshalMap(toJobItem(job))
	if err != nil {
		return entities.Job{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Job{}, interfaces.ErrVersionConflict
		}
		return entities.Job{}, err
	}
	return job, nil
}

func unmarshalJob(raw map[string]types.AttributeValue) (entities.Job, error) {
	var it jobItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Job{}, err
	}
	return fromJobItem(it)
}
