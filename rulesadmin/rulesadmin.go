// Package rulesadmin manages route-rule configuration documents over HTTP.
//
// It is the administrative counterpart of the validation engine: rules the
// validator reads per request are created, inspected and retired here. Writes
// enforce what the validator assumes — rule documents are well formed and at
// most one active rule exists per (routeName, method) pair.
package rulesadmin

import (
	"context"
	"net/http"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reqcraft/reqcraft/dtox"
	"github.com/reqcraft/reqcraft/errx"
	"github.com/reqcraft/reqcraft/storex"
	"github.com/reqcraft/reqcraft/validatex"
)

// AdminErrors is the error registry for rule administration failures.
var AdminErrors = errx.NewRegistry("RULES")

var (
	ErrDuplicateActiveRule = AdminErrors.Register("DUPLICATE_ACTIVE_RULE", errx.TypeConflict, http.StatusConflict, "An active rule already exists for this route and method")
)

// RouteRuleDTO is the wire shape of a rule document.
type RouteRuleDTO struct {
	ID          string                `json:"id,omitempty"`
	RouteName   string                `json:"routeName"`
	Method      string                `json:"method"`
	IsActive    bool                  `json:"isActive"`
	URLParams   []validatex.ParamRule `json:"urlParams,omitempty"`
	QueryParams []validatex.ParamRule `json:"queryParams,omitempty"`
	BodySchema  map[string]any        `json:"requestBodySchema,omitempty"`
}

// Service implements rule administration over a storex repository.
type Service struct {
	rules  storex.Repository[validatex.RouteRule]
	mapper *dtox.Mapper[RouteRuleDTO, validatex.RouteRule]
}

// NewService creates a rule administration service.
func NewService(rules storex.Repository[validatex.RouteRule]) *Service {
	return &Service{
		rules:  rules,
		mapper: newRuleMapper(),
	}
}

func newRuleMapper() *dtox.Mapper[RouteRuleDTO, validatex.RouteRule] {
	return dtox.NewMapper(
		func(dto RouteRuleDTO) (validatex.RouteRule, error) {
			rule := validatex.RouteRule{
				RouteName:   dto.RouteName,
				Method:      dto.Method,
				IsActive:    dto.IsActive,
				URLParams:   dto.URLParams,
				QueryParams: dto.QueryParams,
				BodySchema:  dto.BodySchema,
			}
			if dto.ID != "" {
				oid, err := primitive.ObjectIDFromHex(dto.ID)
				if err != nil {
					return validatex.RouteRule{}, storex.StoreErrors.NewWithCause(storex.ErrInvalidID, err)
				}
				rule.ID = oid
			}
			return rule, nil
		},
		func(rule validatex.RouteRule) (RouteRuleDTO, error) {
			dto := RouteRuleDTO{
				RouteName:   rule.RouteName,
				Method:      rule.Method,
				IsActive:    rule.IsActive,
				URLParams:   rule.URLParams,
				QueryParams: rule.QueryParams,
				BodySchema:  rule.BodySchema,
			}
			if !rule.ID.IsZero() {
				dto.ID = rule.ID.Hex()
			}
			return dto, nil
		},
	).WithValidation(validateRuleDTO)
}

func validateRuleDTO(dto RouteRuleDTO) error {
	var v dtox.Violations

	if dto.RouteName == "" {
		v.Add("routeName", "routeName is required")
	}
	if dto.Method == "" {
		v.Add("method", "method is required")
	}

	validateParamRules(&v, "urlParams", dto.URLParams)
	validateParamRules(&v, "queryParams", dto.QueryParams)

	return v.Err()
}

func validateParamRules(v *dtox.Violations, field string, rules []validatex.ParamRule) {
	for _, rule := range rules {
		name := field + "." + rule.Name
		if rule.Name == "" {
			v.Add(field, "parameter name is required")
			continue
		}
		if !rule.DataType.Known() {
			v.Add(name, "unknown data type: "+string(rule.DataType))
		}
		if rule.DataType == validatex.DataTypeDate && rule.Format == "" {
			v.Add(name, "date parameters require a format")
		}
		if rule.Regex != "" {
			if _, err := regexp.Compile(rule.Regex); err != nil {
				v.Add(name, "regex does not compile: "+rule.Regex)
			}
		}
		if rule.Constraint != nil && !rule.Constraint.Kind.Known() {
			v.Add(name, "unknown constraint kind: "+string(rule.Constraint.Kind))
		}
	}
}

// List returns rule documents, newest insertion order, honoring pagination.
func (s *Service) List(ctx context.Context, limit, offset int64) ([]RouteRuleDTO, error) {
	rules, err := s.rules.FindAll(ctx, storex.Query{}, storex.FindOptions{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return s.mapper.ToDtos(rules)
}

// Get returns one rule document by id.
func (s *Service) Get(ctx context.Context, id string) (RouteRuleDTO, error) {
	rule, err := s.rules.FindByID(ctx, id)
	if err != nil {
		return RouteRuleDTO{}, err
	}
	return s.mapper.ToDto(rule)
}

// Create validates and stores a new rule document. An active rule may not
// shadow an existing active rule for the same route and method.
func (s *Service) Create(ctx context.Context, dto RouteRuleDTO) (RouteRuleDTO, error) {
	dto.ID = ""
	rule, err := s.mapper.ToModel(dto)
	if err != nil {
		return RouteRuleDTO{}, err
	}
	if rule.IsActive {
		if err := s.ensureNoActiveRule(ctx, rule.RouteName, rule.Method, ""); err != nil {
			return RouteRuleDTO{}, err
		}
	}
	created, err := s.rules.InsertOne(ctx, rule)
	if err != nil {
		return RouteRuleDTO{}, err
	}
	return s.mapper.ToDto(created)
}

// Update validates and replaces the rule document with the given id.
func (s *Service) Update(ctx context.Context, id string, dto RouteRuleDTO) (RouteRuleDTO, error) {
	dto.ID = ""
	rule, err := s.mapper.ToModel(dto)
	if err != nil {
		return RouteRuleDTO{}, err
	}
	if rule.IsActive {
		if err := s.ensureNoActiveRule(ctx, rule.RouteName, rule.Method, id); err != nil {
			return RouteRuleDTO{}, err
		}
	}

	updated, err := s.rules.FindOneAndUpdate(ctx,
		storex.Query{"_id": id},
		storex.Set(map[string]any{
			"routeName":         rule.RouteName,
			"method":            rule.Method,
			"isActive":          rule.IsActive,
			"urlParams":         rule.URLParams,
			"queryParams":       rule.QueryParams,
			"requestBodySchema": rule.BodySchema,
		}),
		storex.ReturnAfter,
	)
	if err != nil {
		return RouteRuleDTO{}, err
	}
	return s.mapper.ToDto(updated)
}

// Delete removes the rule document with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.rules.DeleteOne(ctx, storex.Query{"_id": id})
}

// ensureNoActiveRule rejects a write that would leave two active rules on the
// same (routeName, method) pair. allowID exempts the document being updated.
func (s *Service) ensureNoActiveRule(ctx context.Context, routeName, method, allowID string) error {
	existing, err := s.rules.FindOne(ctx, storex.Query{
		"routeName": routeName,
		"method":    method,
		"isActive":  true,
	})
	if err != nil {
		if storex.IsRecordNotFound(err) {
			return nil
		}
		return err
	}
	if allowID != "" && existing.ID.Hex() == allowID {
		return nil
	}
	return AdminErrors.New(ErrDuplicateActiveRule).
		WithDetail("routeName", routeName).
		WithDetail("method", method)
}
