package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleContributor  Role = "contributor"
	RoleCollaborator Role = "collaborator"
)

// Roles is every role a project gets a policy for.
var Roles = []Role{RoleAdmin, RoleContributor, RoleCollaborator}

const (
	policyVersion = "2012-10-17"
	userPrefix    = "${jwt:preferred_username}"
)

var (
	bucketActions = []string{"s3:GetBucketLocation", "s3:ListBucket"}
	objectActions = []string{"s3:GetObject", "s3:PutObject", "s3:DeleteObject"}
)

type PolicyDocument struct {
	Version   string            `json:"Version"`
	Statement []PolicyStatement `json:"Statement"`
}

type PolicyStatement struct {
	Action   []string `json:"Action"`
	Effect   string   `json:"Effect"`
	Resource []string `json:"Resource"`
}

// PolicyStore registers canned policies, implemented by *iam.PolicyClient.
type PolicyStore interface {
	AddPolicy(ctx context.Context, name string, document []byte) error
	RemovePolicy(ctx context.Context, name string) error
}

type PolicyManager interface {
	CreatePoliciesForProject(ctx context.Context, code string) error
	RollbackPoliciesForProject(ctx context.Context, code string) error
}

type policyManager struct {
	store    PolicyStore
	prefixes []string
	log      *zap.Logger
}

// NewPolicyManager scopes policies to the buckets named by prefixes. The
// first prefix is the greenroom zone.
func NewPolicyManager(store PolicyStore, prefixes []string, log *zap.Logger) PolicyManager {
	return &policyManager{store: store, prefixes: prefixes, log: log}
}

func PolicyName(code string, role Role) string {
	return code + "-" + string(role)
}

func bucketARN(bucket string) string { return "arn:aws:s3:::" + bucket }

// Document renders the policy of role for the project's buckets. Admins get
// every object, contributors only their own prefix, collaborators their own
// prefix in greenroom and every object elsewhere.
func Document(prefixes []string, code string, role Role) PolicyDocument {
	buckets := lo.Map(prefixes, func(p string, _ int) string { return p + "-" + code })

	objects := lo.Map(buckets, func(b string, i int) string {
		restricted := role == RoleContributor || (role == RoleCollaborator && i == 0)
		if restricted {
			return bucketARN(b) + "/" + userPrefix + "/*"
		}
		return bucketARN(b) + "/*"
	})

	return PolicyDocument{
		Version: policyVersion,
		Statement: []PolicyStatement{
			{Action: bucketActions, Effect: "Allow", Resource: lo.Map(buckets, func(b string, _ int) string { return bucketARN(b) })},
			{Action: objectActions, Effect: "Allow", Resource: objects},
		},
	}
}

func (m *policyManager) CreatePoliciesForProject(ctx context.Context, code string) error {
	for _, role := range Roles {
		name := PolicyName(code, role)
		doc, err := sonic.Marshal(Document(m.prefixes, code, role))
		if err != nil {
			return apperr.Unhandled(fmt.Sprintf("unable to render policy %s", name), err)
		}
		m.log.Info("creating policy", zap.String("policy", name))
		if err := m.store.AddPolicy(ctx, name, doc); err != nil {
			return err
		}
	}
	return nil
}

// RollbackPoliciesForProject removes the policy of every role. A missing
// policy is reported as NotFound; the remaining roles are still attempted
// and the first failure is returned.
func (m *policyManager) RollbackPoliciesForProject(ctx context.Context, code string) error {
	var first error
	for _, role := range Roles {
		name := PolicyName(code, role)
		m.log.Info("removing policy", zap.String("policy", name))
		if err := m.store.RemovePolicy(ctx, name); err != nil {
			m.log.Error("unable to remove policy", zap.String("policy", name), zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
