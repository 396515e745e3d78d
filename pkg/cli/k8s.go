package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/cli/internal/parse"
	"github.com/jtitra/labkit/pkg/k8s"
	"github.com/jtitra/labkit/pkg/provision"
)

var (
	kubeconfigPath string
	k8sNamespace   string
	k8sService     string
	k8sSecretName  string
	k8sLiterals    []string
	k8sHostname    string
	k8sWaitURL     string
)

var k8sCmd = &cobra.Command{
	Use:   "k8s",
	Short: "Work with the lab cluster",
}

func newK8sClient() (*k8s.Client, error) {
	return k8s.NewClient(kubeconfigPath)
}

var k8sLBIPCmd = &cobra.Command{
	Use:   "lb-ip",
	Short: "Wait for a service's load balancer IP",
	Long: `Lb-ip polls the named service until its load balancer has an
external address and prints it. Bound by the command context, so use
a timeout when calling from provisioning scripts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newK8sClient()
		if err != nil {
			return err
		}
		ip, err := client.LoadBalancerIP(cmd.Context(), k8sNamespace, k8sService)
		if err != nil {
			return err
		}
		printResult(map[string]string{"service": k8sService, "ip": ip}, func() {
			fmt.Println(ip)
		})
		return nil
	},
}

var k8sSecretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Create an opaque secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newK8sClient()
		if err != nil {
			return err
		}
		data, err := parse.KeyValues(k8sLiterals)
		if err != nil {
			return err
		}
		if err := client.CreateSecret(cmd.Context(), k8sNamespace, k8sSecretName, data); err != nil {
			return err
		}
		printResult(map[string]string{"namespace": k8sNamespace, "name": k8sSecretName}, func() {
			fmt.Printf("Created secret '%s/%s'.\n", k8sNamespace, k8sSecretName)
		})
		return nil
	},
}

var k8sApplyCmd = &cobra.Command{
	Use:   "apply <pattern>...",
	Short: "Apply manifests matching glob patterns",
	Long: `Apply creates every YAML document in the files matched by the given
glob patterns; objects that already exist are left alone. Patterns
support ** for recursive matches, e.g. 'manifests/**/*.yaml'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newK8sClient()
		if err != nil {
			return err
		}
		if err := client.ApplyManifests(cmd.Context(), k8sNamespace, args...); err != nil {
			return err
		}
		printResult(map[string]any{"patterns": args}, func() {
			fmt.Println("Manifests applied.")
		})
		return nil
	},
}

var k8sWaitAPICmd = &cobra.Command{
	Use:   "wait-api",
	Short: "Wait until an API server answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newK8sClient()
		if err != nil {
			return err
		}
		if err := client.WaitForAPIServer(cmd.Context(), k8sWaitURL); err != nil {
			return err
		}
		printResult(map[string]string{"url": k8sWaitURL}, func() {
			fmt.Printf("API server at %s is up.\n", k8sWaitURL)
		})
		return nil
	},
}

var k8sHostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "Point a hostname at a service's load balancer",
	Long: `Hosts waits for the named service's load balancer IP and rewrites
/etc/hosts so the given hostname resolves to it. Stale entries for
the hostname are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newK8sClient()
		if err != nil {
			return err
		}
		ip, err := client.LoadBalancerIP(cmd.Context(), k8sNamespace, k8sService)
		if err != nil {
			return err
		}

		prov := provision.New(provision.WithLogger(logger()))
		if err := prov.EnsureHostsEntry(k8sHostname, ip); err != nil {
			return err
		}
		printResult(map[string]string{"hostname": k8sHostname, "ip": ip}, func() {
			fmt.Printf("'%s' now resolves to %s.\n", k8sHostname, ip)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(k8sCmd)
	k8sCmd.AddCommand(k8sLBIPCmd)
	k8sCmd.AddCommand(k8sSecretCmd)
	k8sCmd.AddCommand(k8sApplyCmd)
	k8sCmd.AddCommand(k8sWaitAPICmd)
	k8sCmd.AddCommand(k8sHostsCmd)

	k8sCmd.PersistentFlags().StringVar(&kubeconfigPath, "kubeconfig", "", "path to the kubeconfig file (default: in-cluster, then ~/.kube/config)")
	k8sCmd.PersistentFlags().StringVarP(&k8sNamespace, "namespace", "n", "default", "namespace to operate in")

	k8sLBIPCmd.Flags().StringVar(&k8sService, "service", "", "service name (required)")
	k8sLBIPCmd.MarkFlagRequired("service")

	k8sSecretCmd.Flags().StringVar(&k8sSecretName, "name", "", "secret name (required)")
	k8sSecretCmd.Flags().StringArrayVar(&k8sLiterals, "from-literal", nil, "secret entry (key=value, repeatable)")
	k8sSecretCmd.MarkFlagRequired("name")

	k8sWaitAPICmd.Flags().StringVar(&k8sWaitURL, "url", "", "API server URL to poll (required)")
	k8sWaitAPICmd.MarkFlagRequired("url")

	k8sHostsCmd.Flags().StringVar(&k8sService, "service", "", "service name (required)")
	k8sHostsCmd.Flags().StringVar(&k8sHostname, "hostname", "", "hostname to map (required)")
	k8sHostsCmd.MarkFlagRequired("service")
	k8sHostsCmd.MarkFlagRequired("hostname")
}
