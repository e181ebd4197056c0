/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package strategy

import (
	"context"
	"errors"
	"log/slog"

	"github.com/brianvoe/gofakeit/v6"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/association"
	"dirpx.dev/ffx/reconcile"
)

// NewAssociationStrategy samples an existing identifier for "*_id" fields.
// Unknown entities and empty id sets fall through silently; lookup failures
// are logged and fall through.
func NewAssociationStrategy(ids apis.IDSource, f *gofakeit.Faker, log *slog.Logger) apis.Strategy {
	if f == nil {
		f = gofakeit.New(0)
	}
	return &associationStrategy{ids: ids, faker: f, log: orDiscard(log)}
}

type associationStrategy struct {
	ids   apis.IDSource
	faker *gofakeit.Faker
	log   *slog.Logger
}

// Ensure associationStrategy implements apis.Strategy.
var _ apis.Strategy = (*associationStrategy)(nil)

func (s *associationStrategy) TryResolve(ctx context.Context, req apis.Request) (apis.Value, bool) {
	if s.ids == nil {
		return nil, false
	}
	entity, ok := association.Entity(req.Field)
	if !ok {
		return nil, false
	}

	ids, err := s.ids.IDs(ctx, entity)
	if errors.Is(err, association.ErrUnknownEntity) {
		return nil, false
	}
	if err != nil {
		s.log.Warn("ffx: association lookup failed", "field", req.Field, "entity", entity, "err", err)
		return nil, false
	}
	return reconcile.Sample(s.faker, ids)
}
