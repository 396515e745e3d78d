package k8s

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

var (
	lbPollInterval        = 5 * time.Second
	lbPollRetries  uint64 = 14 // 15 attempts total

	apiPollInterval = 2 * time.Second
)

var errNoIngress = errors.New("no ingress ip yet")

// LoadBalancerIP polls the service until its load balancer reports an
// ingress IP. Provisioners call this right after exposing a service, when
// the cloud side routinely lags by a minute.
func (c *Client) LoadBalancerIP(ctx context.Context, namespace, name string) (string, error) {
	var ip string
	operation := func() error {
		svc, err := c.clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return err
		}
		ingress := svc.Status.LoadBalancer.Ingress
		if len(ingress) == 0 || ingress[0].IP == "" {
			return errNoIngress
		}
		ip = ingress[0].IP
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(lbPollInterval), lbPollRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", fmt.Errorf("failed to get load balancer ip for %s/%s: %w", namespace, name, err)
	}
	return ip, nil
}

// WaitForAPIServer polls the given URL until it answers 200. It only gives
// up when the context does.
func (c *Client) WaitForAPIServer(ctx context.Context, url string) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("api server returned status %d", resp.StatusCode)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(apiPollInterval), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("api server at %s never became ready: %w", url, err)
	}
	return nil
}
