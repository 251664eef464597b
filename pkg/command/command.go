/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"github.com/canlab/go-canmon/pkg/config"
	"github.com/canlab/go-canmon/pkg/monitor"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s/api", cfg.Api.Address),
	}
}

func (c *ApiClient) get(url string) (string, error) {
	r, err := req.Get(url)
	if err != nil {
		return "", err
	}
	if r.Response().StatusCode != 200 {
		return "", errors.New(r.Response().Status)
	}
	result := &monitor.CommandResult{}
	if err = r.ToJSON(result); err != nil {
		return "", err
	}
	return result.Output, nil
}

func (c *ApiClient) post(url string, body interface{}) (string, error) {
	var r *req.Resp
	var err error
	if body != nil {
		r, err = req.Post(url, req.BodyJSON(body))
	} else {
		r, err = req.Post(url)
	}
	if err != nil {
		return "", err
	}
	if r.Response().StatusCode != 200 {
		return "", errors.New(r.Response().Status)
	}
	result := &monitor.CommandResult{}
	if err = r.ToJSON(result); err != nil {
		return "", err
	}
	return result.Output, nil
}

// Stats fetches the received/sent/cached totals.
func (c *ApiClient) Stats() (string, error) {
	return c.get(fmt.Sprintf("%s/stats", c.ApiPrefix))
}

// Dump fetches the cache entries plus stats.
func (c *ApiClient) Dump() (string, error) {
	return c.get(fmt.Sprintf("%s/cache", c.ApiPrefix))
}

// Clear resets the cache and the counters.
func (c *ApiClient) Clear() (string, error) {
	return c.post(fmt.Sprintf("%s/clear", c.ApiPrefix), nil)
}

// Send transmits one ad hoc frame given as a literal, e.g. "0x123 0xAA".
func (c *ApiClient) Send(frame string) (string, error) {
	return c.post(fmt.Sprintf("%s/send", c.ApiPrefix), &monitor.SendRequest{Frame: frame})
}
