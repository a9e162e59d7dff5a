// Copyright 2025 LocaTour
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


// Package routing plans multi-step public-transport routes to tourism
// destinations in Ilocos Norte. It combines a gazetteer of coordinates with
// known jeepney, bus and van routes, falling back to distance-based fare
// estimates when no scheduled route connects two points.
package routing
