// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import "fmt"

// Location is a point on the earth's surface, expressed as longitude and
// latitude in decimal degrees. A Node with a nil *Location has no known
// position, as is the case for a deleted node in a change file.
type Location struct {
	Lon Degrees
	Lat Degrees
}

// FromE7 converts a pair of o5m fixed-point coordinates, each expressed as
// degrees multiplied by 1e7, into a Location.
func FromE7(lon, lat int64) Location {
	return Location{
		Lon: Degrees(lon) / Degrees(TenMillionths),
		Lat: Degrees(lat) / Degrees(TenMillionths),
	}
}

func (l Location) String() string {
	return fmt.Sprintf("(%s, %s)", ftoa(float64(l.Lon)), ftoa(float64(l.Lat)))
}
