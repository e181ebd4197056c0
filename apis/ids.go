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

package apis

import "context"

// IDSource lists the identifiers of a referenced entity, e.g. all author ids
// for an "author_id" field.
type IDSource interface {
	// IDs returns the valid identifiers for entity. Implementations return
	// an error wrapping association.ErrUnknownEntity when the entity does
	// not exist.
	IDs(ctx context.Context, entity string) ([]Value, error)
}
