package scalesetcleaner

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"errors"
	"testing"

	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/sirupsen/logrus"

	"github.com/miniad/rscluster/pkg/util/azureclient/mgmt/compute"
)

type fakeVMSSClient struct {
	compute.VirtualMachineScaleSetsClient

	scalesets []mgmtcompute.VirtualMachineScaleSet
	listErr   error
	deleteErr error

	deleted []string
}

func (c *fakeVMSSClient) List(ctx context.Context, resourceGroupName string) ([]mgmtcompute.VirtualMachineScaleSet, error) {
	return c.scalesets, c.listErr
}

func (c *fakeVMSSClient) DeleteAndWait(ctx context.Context, resourceGroupName, VMScaleSetName string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.deleted = append(c.deleted, VMScaleSetName)
	return nil
}

func TestRemoveFailedNewScaleset(t *testing.T) {
	ctx := context.Background()
	rg := "testRG"
	vmssToDelete := "cluster-vmss-1-1-0"
	servingVMSS := "cluster-vmss-1-0-0"

	for _, tt := range []struct {
		name        string
		vmss        *fakeVMSSClient
		want        bool
		wantDeleted []string
	}{
		{
			name: "list failed, don't delete, don't retry",
			vmss: &fakeVMSSClient{listErr: errors.New("fake error")},
		},
		{
			name: "no scalesets, don't delete, retry",
			vmss: &fakeVMSSClient{},
			want: true,
		},
		{
			name: "one serving scaleset, don't delete, retry",
			vmss: &fakeVMSSClient{
				scalesets: []mgmtcompute.VirtualMachineScaleSet{
					{Name: to.StringPtr(servingVMSS)},
				},
			},
			want: true,
		},
		{
			name: "only the new scaleset, don't delete, don't retry",
			vmss: &fakeVMSSClient{
				scalesets: []mgmtcompute.VirtualMachineScaleSet{
					{Name: to.StringPtr(vmssToDelete)},
				},
			},
		},
		{
			name: "new scaleset not listed, don't delete, retry",
			vmss: &fakeVMSSClient{
				scalesets: []mgmtcompute.VirtualMachineScaleSet{
					{Name: to.StringPtr(servingVMSS)},
					{Name: to.StringPtr("cluster-vmss-0-9-0")},
				},
			},
			want: true,
		},
		{
			name: "deletion failed, don't retry",
			vmss: &fakeVMSSClient{
				scalesets: []mgmtcompute.VirtualMachineScaleSet{
					{Name: to.StringPtr(servingVMSS)},
					{Name: to.StringPtr(vmssToDelete)},
				},
				deleteErr: errors.New("fake error"),
			},
		},
		{
			name: "deletion succeeded, retry",
			vmss: &fakeVMSSClient{
				scalesets: []mgmtcompute.VirtualMachineScaleSet{
					{Name: to.StringPtr(servingVMSS)},
					{Name: to.StringPtr(vmssToDelete)},
				},
			},
			want:        true,
			wantDeleted: []string{vmssToDelete},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c := cleaner{
				log:  logrus.NewEntry(logrus.StandardLogger()),
				vmss: tt.vmss,
			}

			retry := c.RemoveFailedNewScaleset(ctx, rg, vmssToDelete)
			if retry != tt.want {
				t.Error(retry)
			}

			if len(tt.vmss.deleted) != len(tt.wantDeleted) {
				t.Error(tt.vmss.deleted)
			}
			for i := range tt.wantDeleted {
				if tt.vmss.deleted[i] != tt.wantDeleted[i] {
					t.Error(tt.vmss.deleted)
				}
			}
		})
	}
}
