package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"

	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
	mgmtnetwork "github.com/Azure/azure-sdk-for-go/services/network/mgmt/2020-08-01/network"
	mgmtinsights "github.com/Azure/azure-sdk-for-go/services/preview/monitor/mgmt/2018-03-01/insights"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/miniad/rscluster/pkg/util/arm"
	"github.com/miniad/rscluster/pkg/util/azureclient"
)

// ClusterTemplate deploys the serving tier: the application gateway, an
// autoscaling scale set of RStudio nodes built from the gallery image, and
// the autoscale rules driving it.  The scale set name carries the image
// version, so a new image rolls in as a fresh scale set next to the old one.
func (g *generator) ClusterTemplate() *arm.Template {
	t := templateStanza()

	for _, param := range []string{
		"vmSize",
		"vmssName",
		"adminUsername",
		"adminPassword",
		"domainJoinPassword",
		"realm",
		"directoryIp",
		"nfsGatewayIp",
		"imageId",
		"minCapacity",
		"maxCapacity",
	} {
		typ := "string"
		switch param {
		case "adminPassword", "domainJoinPassword":
			typ = "securestring"
		}
		t.Parameters[param] = &arm.TemplateParameter{Type: typ}
	}
	t.Parameters["vmssCapacity"] = &arm.TemplateParameter{Type: "int"}
	t.Parameters["appGatewayCapacity"] = &arm.TemplateParameter{Type: "int"}
	t.Parameters["scaleOutThreshold"] = &arm.TemplateParameter{Type: "int"}
	t.Parameters["scaleInThreshold"] = &arm.TemplateParameter{Type: "int"}

	t.Resources = append(t.Resources,
		g.publicIPAddress(appGatewayPIPName),
		g.applicationGateway(),
		g.clusterVMSS(),
		g.clusterAutoscale(),
	)

	t.Outputs = map[string]*arm.Output{
		"gatewayPublicIp": {
			Type:  "string",
			Value: fmt.Sprintf("[reference(resourceId('Microsoft.Network/publicIPAddresses', '%s'), '%s').ipAddress]", appGatewayPIPName, azureclient.APIVersion("Microsoft.Network")),
		},
	}

	return t
}

func (g *generator) applicationGateway() *arm.Resource {
	appGatewayID := fmt.Sprintf("resourceId('Microsoft.Network/applicationGateways', '%s')", appGatewayName)

	return &arm.Resource{
		Resource: &mgmtnetwork.ApplicationGateway{
			ApplicationGatewayPropertiesFormat: &mgmtnetwork.ApplicationGatewayPropertiesFormat{
				Sku: &mgmtnetwork.ApplicationGatewaySku{
					Name:     mgmtnetwork.StandardV2,
					Tier:     mgmtnetwork.ApplicationGatewayTierStandardV2,
					Capacity: to.Int32Ptr(appGWCapacityHack),
				},
				GatewayIPConfigurations: &[]mgmtnetwork.ApplicationGatewayIPConfiguration{
					{
						ApplicationGatewayIPConfigurationPropertiesFormat: &mgmtnetwork.ApplicationGatewayIPConfigurationPropertiesFormat{
							Subnet: &mgmtnetwork.SubResource{
								ID: to.StringPtr(fmt.Sprintf("[resourceId('Microsoft.Network/virtualNetworks/subnets', '%s', '%s')]", vnetName, gatewaySubnetName)),
							},
						},
						Name: to.StringPtr("appgw-ipconfig"),
					},
				},
				FrontendIPConfigurations: &[]mgmtnetwork.ApplicationGatewayFrontendIPConfiguration{
					{
						ApplicationGatewayFrontendIPConfigurationPropertiesFormat: &mgmtnetwork.ApplicationGatewayFrontendIPConfigurationPropertiesFormat{
							PublicIPAddress: &mgmtnetwork.SubResource{
								ID: to.StringPtr(fmt.Sprintf("[resourceId('Microsoft.Network/publicIPAddresses', '%s')]", appGatewayPIPName)),
							},
						},
						Name: to.StringPtr("appgw-frontend"),
					},
				},
				FrontendPorts: &[]mgmtnetwork.ApplicationGatewayFrontendPort{
					{
						ApplicationGatewayFrontendPortPropertiesFormat: &mgmtnetwork.ApplicationGatewayFrontendPortPropertiesFormat{
							Port: to.Int32Ptr(80),
						},
						Name: to.StringPtr("port-80"),
					},
				},
				Probes: &[]mgmtnetwork.ApplicationGatewayProbe{
					{
						ApplicationGatewayProbePropertiesFormat: &mgmtnetwork.ApplicationGatewayProbePropertiesFormat{
							Protocol:                            mgmtnetwork.HTTP,
							Path:                                to.StringPtr("/health-check"),
							Interval:                            to.Int32Ptr(30),
							Timeout:                             to.Int32Ptr(30),
							UnhealthyThreshold:                  to.Int32Ptr(3),
							PickHostNameFromBackendHTTPSettings: to.BoolPtr(true),
						},
						Name: to.StringPtr("rstudio-probe"),
					},
				},
				BackendAddressPools: &[]mgmtnetwork.ApplicationGatewayBackendAddressPool{
					{
						ApplicationGatewayBackendAddressPoolPropertiesFormat: &mgmtnetwork.ApplicationGatewayBackendAddressPoolPropertiesFormat{},
						Name: to.StringPtr("cluster-backend"),
					},
				},
				BackendHTTPSettingsCollection: &[]mgmtnetwork.ApplicationGatewayBackendHTTPSettings{
					{
						ApplicationGatewayBackendHTTPSettingsPropertiesFormat: &mgmtnetwork.ApplicationGatewayBackendHTTPSettingsPropertiesFormat{
							Port:     to.Int32Ptr(8787),
							Protocol: mgmtnetwork.HTTP,
							// RStudio sessions are stateful
							CookieBasedAffinity:            mgmtnetwork.Enabled,
							RequestTimeout:                 to.Int32Ptr(120),
							PickHostNameFromBackendAddress: to.BoolPtr(true),
							Probe: &mgmtnetwork.SubResource{
								ID: to.StringPtr(fmt.Sprintf("[concat(%s, '/probes/rstudio-probe')]", appGatewayID)),
							},
						},
						Name: to.StringPtr("rstudio-settings"),
					},
				},
				HTTPListeners: &[]mgmtnetwork.ApplicationGatewayHTTPListener{
					{
						ApplicationGatewayHTTPListenerPropertiesFormat: &mgmtnetwork.ApplicationGatewayHTTPListenerPropertiesFormat{
							FrontendIPConfiguration: &mgmtnetwork.SubResource{
								ID: to.StringPtr(fmt.Sprintf("[concat(%s, '/frontendIPConfigurations/appgw-frontend')]", appGatewayID)),
							},
							FrontendPort: &mgmtnetwork.SubResource{
								ID: to.StringPtr(fmt.Sprintf("[concat(%s, '/frontendPorts/port-80')]", appGatewayID)),
							},
							Protocol: mgmtnetwork.HTTP,
						},
						Name: to.StringPtr("http-listener"),
					},
				},
				RequestRoutingRules: &[]mgmtnetwork.ApplicationGatewayRequestRoutingRule{
					{
						ApplicationGatewayRequestRoutingRulePropertiesFormat: &mgmtnetwork.ApplicationGatewayRequestRoutingRulePropertiesFormat{
							RuleType: mgmtnetwork.Basic,
							HTTPListener: &mgmtnetwork.SubResource{
								ID: to.StringPtr(fmt.Sprintf("[concat(%s, '/httpListeners/http-listener')]", appGatewayID)),
							},
							BackendAddressPool: &mgmtnetwork.SubResource{
								ID: to.StringPtr(fmt.Sprintf("[concat(%s, '/backendAddressPools/cluster-backend')]", appGatewayID)),
							},
							BackendHTTPSettings: &mgmtnetwork.SubResource{
								ID: to.StringPtr(fmt.Sprintf("[concat(%s, '/backendHttpSettingsCollection/rstudio-settings')]", appGatewayID)),
							},
						},
						Name: to.StringPtr("rstudio-rule"),
					},
				},
			},
			Name:     to.StringPtr(appGatewayName),
			Type:     to.StringPtr("Microsoft.Network/applicationGateways"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Network"),
		DependsOn: []string{
			fmt.Sprintf("[resourceId('Microsoft.Network/publicIPAddresses', '%s')]", appGatewayPIPName),
		},
	}
}

func (g *generator) clusterVMSS() *arm.Resource {
	return &arm.Resource{
		Resource: &mgmtcompute.VirtualMachineScaleSet{
			Sku: &mgmtcompute.Sku{
				Name:     to.StringPtr("[parameters('vmSize')]"),
				Tier:     to.StringPtr("Standard"),
				Capacity: to.Int64Ptr(vmssCapacityHack),
			},
			VirtualMachineScaleSetProperties: &mgmtcompute.VirtualMachineScaleSetProperties{
				UpgradePolicy: &mgmtcompute.UpgradePolicy{
					Mode: mgmtcompute.UpgradeModeManual,
				},
				VirtualMachineProfile: &mgmtcompute.VirtualMachineScaleSetVMProfile{
					OsProfile: &mgmtcompute.VirtualMachineScaleSetOSProfile{
						ComputerNamePrefix: to.StringPtr("[concat('rs-', parameters('vmssName'), '-')]"),
						AdminUsername:      to.StringPtr("[parameters('adminUsername')]"),
						AdminPassword:      to.StringPtr("[parameters('adminPassword')]"),
						LinuxConfiguration: &mgmtcompute.LinuxConfiguration{
							DisablePasswordAuthentication: to.BoolPtr(false),
						},
					},
					StorageProfile: &mgmtcompute.VirtualMachineScaleSetStorageProfile{
						ImageReference: &mgmtcompute.ImageReference{
							ID: to.StringPtr("[parameters('imageId')]"),
						},
						OsDisk: &mgmtcompute.VirtualMachineScaleSetOSDisk{
							CreateOption: mgmtcompute.DiskCreateOptionTypesFromImage,
							ManagedDisk: &mgmtcompute.VirtualMachineScaleSetManagedDiskParameters{
								StorageAccountType: mgmtcompute.StorageAccountTypesPremiumLRS,
							},
						},
					},
					NetworkProfile: &mgmtcompute.VirtualMachineScaleSetNetworkProfile{
						NetworkInterfaceConfigurations: &[]mgmtcompute.VirtualMachineScaleSetNetworkConfiguration{
							{
								Name: to.StringPtr("cluster-vmss-nic"),
								VirtualMachineScaleSetNetworkConfigurationProperties: &mgmtcompute.VirtualMachineScaleSetNetworkConfigurationProperties{
									Primary: to.BoolPtr(true),
									IPConfigurations: &[]mgmtcompute.VirtualMachineScaleSetIPConfiguration{
										{
											Name: to.StringPtr("cluster-vmss-ipconfig"),
											VirtualMachineScaleSetIPConfigurationProperties: &mgmtcompute.VirtualMachineScaleSetIPConfigurationProperties{
												Subnet: &mgmtcompute.APIEntityReference{
													ID: to.StringPtr(fmt.Sprintf("[resourceId('Microsoft.Network/virtualNetworks/subnets', '%s', '%s')]", vnetName, clusterSubnetName)),
												},
												Primary: to.BoolPtr(true),
												ApplicationGatewayBackendAddressPools: &[]mgmtcompute.SubResource{
													{
														ID: to.StringPtr(fmt.Sprintf("[concat(resourceId('Microsoft.Network/applicationGateways', '%s'), '/backendAddressPools/cluster-backend')]", appGatewayName)),
													},
												},
											},
										},
									},
								},
							},
						},
					},
					ExtensionProfile: &mgmtcompute.VirtualMachineScaleSetExtensionProfile{
						Extensions: &[]mgmtcompute.VirtualMachineScaleSetExtension{
							{
								Name: to.StringPtr("cluster-vmss-cse"),
								VirtualMachineScaleSetExtensionProperties: &mgmtcompute.VirtualMachineScaleSetExtensionProperties{
									Publisher:               to.StringPtr("Microsoft.Azure.Extensions"),
									Type:                    to.StringPtr("CustomScript"),
									TypeHandlerVersion:      to.StringPtr("2.0"),
									AutoUpgradeMinorVersion: to.BoolPtr(true),
									Settings:                map[string]interface{}{},
									ProtectedSettings: map[string]interface{}{
										"script": g.customScript(scriptClusterNode,
											"realm",
											"directoryIp",
											"nfsGatewayIp",
											"domainJoinPassword",
										),
									},
								},
							},
						},
					},
				},
				Overprovision: to.BoolPtr(false),
			},
			Name:     to.StringPtr("[parameters('vmssName')]"),
			Type:     to.StringPtr("Microsoft.Compute/virtualMachineScaleSets"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Compute"),
		DependsOn: []string{
			fmt.Sprintf("[resourceId('Microsoft.Network/applicationGateways', '%s')]", appGatewayName),
		},
	}
}

func (g *generator) clusterAutoscale() *arm.Resource {
	vmssID := "[resourceId('Microsoft.Compute/virtualMachineScaleSets', parameters('vmssName'))]"

	rule := func(operator mgmtinsights.ComparisonOperationType, threshold float64, direction mgmtinsights.ScaleDirection) mgmtinsights.ScaleRule {
		return mgmtinsights.ScaleRule{
			MetricTrigger: &mgmtinsights.MetricTrigger{
				MetricName:        to.StringPtr("Percentage CPU"),
				MetricResourceURI: to.StringPtr(vmssID),
				TimeGrain:         to.StringPtr("PT1M"),
				Statistic:         mgmtinsights.MetricStatisticTypeAverage,
				TimeWindow:        to.StringPtr("PT5M"),
				TimeAggregation:   mgmtinsights.TimeAggregationTypeAverage,
				Operator:          operator,
				Threshold:         to.Float64Ptr(threshold),
			},
			ScaleAction: &mgmtinsights.ScaleAction{
				Direction: direction,
				Type:      mgmtinsights.ChangeCount,
				Value:     to.StringPtr("1"),
				Cooldown:  to.StringPtr("PT5M"),
			},
		}
	}

	return &arm.Resource{
		Resource: &mgmtinsights.AutoscaleSettingResource{
			AutoscaleSetting: &mgmtinsights.AutoscaleSetting{
				Enabled:           to.BoolPtr(true),
				TargetResourceURI: to.StringPtr(vmssID),
				Profiles: &[]mgmtinsights.AutoscaleProfile{
					{
						Name: to.StringPtr("cpu"),
						Capacity: &mgmtinsights.ScaleCapacity{
							Minimum: to.StringPtr("[parameters('minCapacity')]"),
							Default: to.StringPtr("[string(parameters('vmssCapacity'))]"),
							Maximum: to.StringPtr("[parameters('maxCapacity')]"),
						},
						Rules: &[]mgmtinsights.ScaleRule{
							rule(mgmtinsights.GreaterThan, scaleOutThresholdHack, mgmtinsights.ScaleDirectionIncrease),
							rule(mgmtinsights.LessThan, scaleInThresholdHack, mgmtinsights.ScaleDirectionDecrease),
						},
					},
				},
			},
			Name:     to.StringPtr("[concat(parameters('vmssName'), '-autoscale')]"),
			Type:     to.StringPtr("Microsoft.Insights/autoscaleSettings"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Insights"),
		DependsOn: []string{
			"[resourceId('Microsoft.Compute/virtualMachineScaleSets', parameters('vmssName'))]",
		},
	}
}
