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

package association_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/association"
)

func TestEntity(t *testing.T) {
	cases := []struct {
		field string
		want  string
		ok    bool
	}{
		{"author_id", "author", true},
		{"blog_post_id", "blog_post", true},
		{"_id", "", false},
		{"id", "", false},
		{"author", "", false},
		{"author_ids", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			got, ok := association.Entity(tc.field)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMap(t *testing.T) {
	m := association.NewMap(map[string][]apis.Value{"author": {1, 2}})

	ids, err := m.IDs(context.Background(), "author")
	require.NoError(t, err)
	require.Equal(t, []apis.Value{1, 2}, ids)

	ids[0] = 99
	again, _ := m.IDs(context.Background(), "author")
	require.Equal(t, 1, again[0], "IDs must return a copy")

	_, err = m.IDs(context.Background(), "publisher")
	require.ErrorIs(t, err, association.ErrUnknownEntity)

	m.Set("publisher")
	ids, err = m.IDs(context.Background(), "publisher")
	require.NoError(t, err)
	require.Empty(t, ids)

	var zero association.Map
	zero.Set("tag", 5)
	ids, err = zero.IDs(context.Background(), "tag")
	require.NoError(t, err)
	require.Equal(t, []apis.Value{5}, ids)
}
