package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"
)

// Route53Config names the hosted zone and record this deployment uses as a
// shared peer registry: a single TXT record whose value is a
// comma-separated list of `p2p_address` strings.
type Route53Config struct {
	HostedZoneID string
	RecordName   string
	TTLSeconds   int64
}

// Route53Bootstrap discovers and announces ring membership through a Route
// 53 TXT record, for deployments without a fixed `join_address` (spec.md
// §6.3 names `join_address` as the simple case; this is the dynamic
// alternative the teacher's main.go selects via cfg.DHT.Bootstrap.Mode ==
// "route53").
type Route53Bootstrap struct {
	cfg Route53Config
	cli *route53.Client
}

// NewRoute53Bootstrap loads AWS credentials from the default provider chain
// (environment, shared config, instance/task role) and builds a route53
// client.
func NewRoute53Bootstrap(cfg Route53Config) (*Route53Bootstrap, error) {
	if cfg.HostedZoneID == "" || cfg.RecordName == "" {
		return nil, fmt.Errorf("bootstrap: route53 config requires hosted_zone_id and record_name")
	}
	if cfg.TTLSeconds == 0 {
		cfg.TTLSeconds = 30
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
	}
	return &Route53Bootstrap{cfg: cfg, cli: route53.NewFromConfig(awsCfg)}, nil
}

// Discover reads the registry TXT record and splits its value into peer
// addresses. A missing record is not an error: it means no ring exists yet.
func (b *Route53Bootstrap) Discover(ctx context.Context) ([]string, error) {
	out, err := b.cli.ListResourceRecordSets(ctx, &route53.ListResourceRecordSetsInput{
		HostedZoneId:    aws.String(b.cfg.HostedZoneID),
		StartRecordName: aws.String(b.cfg.RecordName),
		StartRecordType: types.RRTypeTxt,
		MaxItems:        aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: route53 list record sets: %w", err)
	}
	return b.peersFromRecordSets(out.ResourceRecordSets), nil
}

// Register adds selfAddr to the registry TXT record, creating it on first
// use.
func (b *Route53Bootstrap) Register(ctx context.Context, selfAddr string) error {
	peers, err := b.Discover(ctx)
	if err != nil {
		return err
	}
	if contains(peers, selfAddr) {
		return nil
	}
	return b.upsert(ctx, append(peers, selfAddr))
}

// Deregister removes selfAddr from the registry TXT record.
func (b *Route53Bootstrap) Deregister(ctx context.Context, selfAddr string) error {
	peers, err := b.Discover(ctx)
	if err != nil {
		return err
	}
	remaining := make([]string, 0, len(peers))
	for _, p := range peers {
		if p != selfAddr {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == len(peers) {
		return nil
	}
	return b.upsert(ctx, remaining)
}

func (b *Route53Bootstrap) upsert(ctx context.Context, peers []string) error {
	value := fmt.Sprintf("%q", strings.Join(peers, ","))
	_, err := b.cli.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(b.cfg.HostedZoneID),
		ChangeBatch: &types.ChangeBatch{
			Changes: []types.Change{
				{
					Action: types.ChangeActionUpsert,
					ResourceRecordSet: &types.ResourceRecordSet{
						Name:            aws.String(b.cfg.RecordName),
						Type:            types.RRTypeTxt,
						TTL:             aws.Int64(b.cfg.TTLSeconds),
						ResourceRecords: []types.ResourceRecord{{Value: aws.String(value)}},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("bootstrap: route53 upsert record: %w", err)
	}
	return nil
}

func (b *Route53Bootstrap) peersFromRecordSets(sets []types.ResourceRecordSet) []string {
	wantName := strings.TrimSuffix(b.cfg.RecordName, ".")
	for _, rs := range sets {
		if rs.Type != types.RRTypeTxt {
			continue
		}
		if strings.TrimSuffix(aws.ToString(rs.Name), ".") != wantName {
			continue
		}
		var peers []string
		for _, rr := range rs.ResourceRecords {
			val := strings.Trim(aws.ToString(rr.Value), `"`)
			for _, addr := range strings.Split(val, ",") {
				if addr != "" {
					peers = append(peers, addr)
				}
			}
		}
		return peers
	}
	return nil
}

func contains(peers []string, addr string) bool {
	for _, p := range peers {
		if p == addr {
			return true
		}
	}
	return false
}
