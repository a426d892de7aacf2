package repository

import (
	"context"
	"errors"
	"testing"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo keeps items by id and evaluates the two condition expressions
// the repository uses.
type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
	puts  []*dynamodb.PutItemInput
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	id := in.Item["id"].(*types.AttributeValueMemberS).Value
	existing, exists := f.items[id]

	switch aws.ToString(in.ConditionExpression) {
	case "attribute_not_exists(#id)":
		if exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
		}
	case "#version = :expected":
		want := in.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value
		got, ok := existing["version"].(*types.AttributeValueMemberN)
		if !exists || !ok || got.Value != want {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("version")}
		}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	want := in.ExpressionAttributeValues[":iid"].(*types.AttributeValueMemberS).Value
	out := &dynamodb.QueryOutput{}
	for _, item := range f.items {
		if v, ok := item["invoice_id"].(*types.AttributeValueMemberS); ok && v.Value == want {
			out.Items = append(out.Items, map[string]types.AttributeValue{"id": item["id"], "invoice_id": v})
		}
	}
	return out, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	out := &dynamodb.ScanOutput{}
	for _, item := range f.items {
		if in.FilterExpression != nil {
			want := in.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS).Value
			if item["status"].(*types.AttributeValueMemberS).Value != want {
				continue
			}
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func TestJobDynamoRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newJobDynamoRepository(newFakeDynamo(), "jobs")
	job := invoicedSample()

	if _, err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, job); !errors.Is(err, errJobAlreadyExists) {
		t.Fatalf("expected errJobAlreadyExists, got %v", err)
	}

	got, err := repo.GetByInvoiceID(ctx, "inv-1")
	if err != nil {
		t.Fatalf("get by invoice: %v", err)
	}
	if got.ID != "job-1" || got.Appointment == nil || got.Invoice == nil {
		t.Fatalf("unexpected job: %+v", got)
	}
	inv := got.Invoice
	if inv.JobID != "job-1" || !inv.TaxRate.Equal(job.Invoice.TaxRate) || !inv.TotalAmount.Equal(job.Invoice.TotalAmount) {
		t.Fatalf("amounts lost precision: %+v", inv)
	}
	if len(inv.Payments) != 1 || !inv.Payments[0].Amount.Equal(job.Invoice.Payments[0].Amount) || inv.Payments[0].InvoiceID != "inv-1" {
		t.Fatalf("unexpected payments: %+v", inv.Payments)
	}
	if !got.Appointment.EndTime.Equal(job.Appointment.EndTime) {
		t.Fatalf("appointment time changed: %v", got.Appointment.EndTime)
	}
}

func TestJobDynamoRepository_SaveVersionCondition(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	repo := newJobDynamoRepository(fake, "jobs")
	job := sampleJob("job-1", invoicedSample().CreatedAt)

	if _, err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create: %v", err)
	}

	job.Status = entities.JobStatusScheduled
	saved, err := repo.Save(ctx, job, 1)
	if err != nil || saved.Version != 2 {
		t.Fatalf("expected version 2, got %d err=%v", saved.Version, err)
	}

	_, err = repo.Save(ctx, job, 1)
	if !errors.Is(err, interfaces.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	var stored jobItem
	if err := attributevalue.UnmarshalMap(fake.items["job-1"], &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stored.Version != 2 || stored.Status != "SCHEDULED" {
		t.Fatalf("unexpected stored item: %+v", stored)
	}
	if _, ok := fake.items["job-1"]["invoice_id"]; ok {
		t.Fatalf("jobs without invoice must not carry invoice_id")
	}
}

func TestJobDynamoRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := newJobDynamoRepository(newFakeDynamo(), "jobs")
	if _, err := repo.Create(ctx, sampleJob("job-new", invoicedSample().CreatedAt)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, invoicedSample()); err != nil {
		t.Fatalf("create: %v", err)
	}

	jobs, err := repo.List(ctx, entities.JobStatusInvoiced)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "job-1" {
		t.Fatalf("expected only job-1, got %v", ids(jobs))
	}

	missing, err := repo.GetByInvoiceID(ctx, "inv-404")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero job, got %+v err=%v", missing, err)
	}
}

func TestJobPostgresRecord_Conversion(t *testing.T) {
	job := invoicedSample()
	job.Version = 7

	rec, err := toJobRecord(job)
	if err != nil {
		t.Fatalf("to record: %v", err)
	}
	if rec.InvoiceID == nil || *rec.InvoiceID != "inv-1" || rec.Status != "INVOICED" {
		t.Fatalf("unexpected record columns: %+v", rec)
	}

	rec.Version = 8
	back, err := fromJobRecord(rec)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	if back.Version != 8 {
		t.Fatalf("expected version column to win, got %d", back.Version)
	}
	if !back.Invoice.Subtotal.Equal(job.Invoice.Subtotal) || back.Invoice.Payments[0].Method != entities.PaymentMethodBankTransfer {
		t.Fatalf("unexpected invoice: %+v", back.Invoice)
	}

	noInvoice, err := toJobRecord(sampleJob("job-2", job.CreatedAt))
	if err != nil || noInvoice.InvoiceID != nil {
		t.Fatalf("expected nil invoice_id column, got %v err=%v", noInvoice.InvoiceID, err)
	}
}
