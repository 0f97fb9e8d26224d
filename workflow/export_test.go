// Copyright (c) 2026 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/gasless
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

package workflow

import (
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func AttemptsCount(o *Orchestrator) float64 {
	return testutil.ToFloat64(o.metrics.attempts)
}

func OutcomesCount(o *Orchestrator, outcome, errorKind string) float64 {
	return testutil.ToFloat64(o.metrics.outcomes.WithLabelValues(outcome, errorKind))
}
